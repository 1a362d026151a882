package jpeg

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// ByteSource provides big-endian primitive reads and marker scanning over a
// JPEG byte stream. All reads consume the stream; there is no seeking.
type ByteSource struct {
	r *bufio.Reader
}

// NewByteSource wraps r in a buffered ByteSource.
func NewByteSource(r io.Reader) *ByteSource {
	return &ByteSource{r: bufio.NewReader(r)}
}

// ReadByte reads a single byte, reporting a Stream error at EOF.
func (s *ByteSource) ReadByte() (byte, error) {
	b, err := s.r.ReadByte()
	if err != nil {
		return 0, ErrTruncated
	}
	return b, nil
}

// ReadUint16 reads a big-endian 16-bit integer.
func (s *ByteSource) ReadUint16() (uint16, error) {
	hi, err := s.ReadByte()
	if err != nil {
		return 0, err
	}
	lo, err := s.ReadByte()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// ReadMarkerPayload reads a 16-bit big-endian segment length L followed by
// L-2 payload bytes into an owned buffer.
func (s *ByteSource) ReadMarkerPayload() ([]byte, error) {
	length, err := s.ReadUint16()
	if err != nil {
		return nil, errors.Wrap(err, "reading segment length")
	}
	if length < 2 {
		return nil, errorf(KindSyntax, "segment length %d shorter than its own length field", length)
	}
	payload := make([]byte, length-2)
	if _, err := io.ReadFull(s.r, payload); err != nil {
		return nil, ErrTruncated
	}
	return payload, nil
}

// ReadNextMarker requires the next byte to be a 0xFF marker prefix, then
// returns the first subsequent byte that is not 0xFF. Runs of 0xFF fill
// bytes collapse into the single marker they introduce.
func (s *ByteSource) ReadNextMarker() (byte, error) {
	b, err := s.ReadByte()
	if err != nil {
		return 0, err
	}
	if b != 0xFF {
		return 0, errorf(KindStructural, "expected marker prefix 0xFF, found %#02x", b)
	}
	for {
		b, err = s.ReadByte()
		if err != nil {
			return 0, err
		}
		if b != 0xFF {
			return b, nil
		}
	}
}
