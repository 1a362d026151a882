package jpeg

import (
	"io"

	"github.com/pkg/errors"
)

// Result is what a successful decode hands back: the JFIF metadata, the
// frame header with its final height, and the accumulated spectral
// coefficients. Dequantization and the inverse DCT are the caller's.
type Result struct {
	JFIF    *JFIFSegment
	Frame   *FrameHeader
	Spectra *Spectra
}

// Decoder drives the marker state machine over a JPEG stream: SOI, JFIF,
// ancillary tables, frame header, then one or more scans until EOI.
type Decoder struct {
	src *ByteSource
	ctx *Context
}

// NewDecoder creates a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{src: NewByteSource(r), ctx: NewContext()}
}

// Context exposes the decoder's table context, populated as segments are
// ingested.
func (d *Decoder) Context() *Context {
	return d.ctx
}

// Decode runs the state machine to EOI and returns the decoded frame.
func (d *Decoder) Decode() (*Result, error) {
	marker, err := d.src.ReadNextMarker()
	if err != nil || marker != MarkerSOI {
		return nil, newError(KindFiletype, "stream does not begin with SOI")
	}

	marker, err = d.src.ReadNextMarker()
	if err != nil {
		return nil, err
	}
	if marker != MarkerAPP0 {
		return nil, errorf(KindMissingJFIFHeader, "expected APP0 after SOI, found %s", MarkerName(marker))
	}
	payload, err := d.src.ReadMarkerPayload()
	if err != nil {
		return nil, errors.Wrap(err, "reading JFIF segment")
	}
	jfif, err := parseJFIF(payload)
	if err != nil {
		return nil, err
	}

	marker, err = d.src.ReadNextMarker()
	if err != nil {
		return nil, err
	}
	marker, err = d.ctx.Update(d.src, marker)
	if err != nil {
		return nil, err
	}

	frame, err := d.readFrameHeader(marker)
	if err != nil {
		return nil, err
	}
	spectra := NewSpectra(frame)

	marker, err = d.src.ReadNextMarker()
	if err != nil {
		return nil, err
	}

	firstScan := true
	for marker != MarkerEOI {
		marker, err = d.ctx.Update(d.src, marker)
		if err != nil {
			return nil, err
		}
		if marker != MarkerSOS {
			return nil, errorf(KindMissingScanHeader, "expected SOS, found %s", MarkerName(marker))
		}
		payload, err := d.src.ReadMarkerPayload()
		if err != nil {
			return nil, errors.Wrap(err, "reading scan header")
		}
		scan, err := parseScanHeader(payload)
		if err != nil {
			return nil, err
		}

		marker, err = d.decodeEntropicSegment(spectra, frame, scan)
		if err != nil {
			return nil, err
		}
		if d.ctx.RestartInterval > 0 {
			for d.ctx.Restart(marker) {
				marker, err = d.decodeEntropicSegment(spectra, frame, scan)
				if err != nil {
					return nil, err
				}
			}
		}

		if firstScan && marker == MarkerDNL {
			payload, err := d.src.ReadMarkerPayload()
			if err != nil {
				return nil, errors.Wrap(err, "reading DNL segment")
			}
			lines, err := parseDNL(payload)
			if err != nil {
				return nil, err
			}
			frame.SetHeight(lines)
			marker, err = d.src.ReadNextMarker()
			if err != nil {
				return nil, err
			}
		}
		firstScan = false
	}

	return &Result{JFIF: jfif, Frame: frame, Spectra: spectra}, nil
}

// readFrameHeader dispatches the marker that ended the pre-frame ancillary
// run. Only the three DCT Huffman frame types are supported; the other
// SOFn codes are well formed but outside this decoder.
func (d *Decoder) readFrameHeader(marker byte) (*FrameHeader, error) {
	switch marker {
	case MarkerSOF0, MarkerSOF1, MarkerSOF2:
	default:
		if isFrameMarker(marker) {
			return nil, errorf(KindUnsupported, "frame type %s", MarkerName(marker))
		}
		return nil, errorf(KindMissingFrameHeader, "expected SOF, found %s", MarkerName(marker))
	}
	payload, err := d.src.ReadMarkerPayload()
	if err != nil {
		return nil, errors.Wrap(err, "reading frame header")
	}
	return parseFrameHeader(marker, payload)
}

// decodeEntropicSegment reads one entropy-coded segment and decodes it into
// the spectra, returning the marker that terminated the segment.
func (d *Decoder) decodeEntropicSegment(spectra *Spectra, frame *FrameHeader, scan *ScanHeader) (byte, error) {
	seg, err := ReadEntropySegment(d.src)
	if err != nil {
		return 0, err
	}
	bits := NewBitstream(seg.Data)
	if err := spectra.DecodeScan(bits, frame, scan, d.ctx); err != nil {
		return 0, err
	}
	return seg.Marker, nil
}
