package jpeg

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes decode failures.
type ErrorKind int

const (
	// KindFiletype means the stream does not begin with an SOI marker.
	KindFiletype ErrorKind = iota + 1
	// KindStream means the stream ended in the middle of a read.
	KindStream
	// KindStructural means a marker prefix byte was not 0xFF where one
	// was required.
	KindStructural
	KindMissingJFIFHeader
	KindInvalidJFIFHeader
	KindMissingFrameHeader
	KindInvalidFrameHeader
	KindMissingScanHeader
	KindInvalidScanHeader
	KindInvalidQuantizationTable
	KindInvalidHuffmanTable
	KindInvalidDNLSegment
	// KindSyntax is the catch-all for other payload integrity failures.
	KindSyntax
	// KindUnsupported means the input is well formed but uses a feature
	// this decoder does not implement (arithmetic coding, hierarchical
	// and lossless frames, unknown density units).
	KindUnsupported
	// KindUnimplemented means the feature is within scope but not yet
	// built (restart intervals).
	KindUnimplemented
)

func (k ErrorKind) String() string {
	switch k {
	case KindFiletype:
		return "Filetype"
	case KindStream:
		return "Stream"
	case KindStructural:
		return "Structural"
	case KindMissingJFIFHeader:
		return "MissingJFIFHeader"
	case KindInvalidJFIFHeader:
		return "InvalidJFIFHeader"
	case KindMissingFrameHeader:
		return "MissingFrameHeader"
	case KindInvalidFrameHeader:
		return "InvalidFrameHeader"
	case KindMissingScanHeader:
		return "MissingScanHeader"
	case KindInvalidScanHeader:
		return "InvalidScanHeader"
	case KindInvalidQuantizationTable:
		return "InvalidQuantizationTable"
	case KindInvalidHuffmanTable:
		return "InvalidHuffmanTable"
	case KindInvalidDNLSegment:
		return "InvalidDNLSegment"
	case KindSyntax:
		return "Syntax"
	case KindUnsupported:
		return "Unsupported"
	case KindUnimplemented:
		return "Unimplemented"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// DecodeError is the error type returned by every component of the decoder.
type DecodeError struct {
	Kind   ErrorKind
	Detail string
}

func (e *DecodeError) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// newError creates a DecodeError with a fixed detail message.
func newError(kind ErrorKind, detail string) *DecodeError {
	return &DecodeError{Kind: kind, Detail: detail}
}

// errorf creates a DecodeError with a formatted detail message.
func errorf(kind ErrorKind, format string, args ...interface{}) *DecodeError {
	return &DecodeError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is, or wraps, a DecodeError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Kind == kind
	}
	return false
}

// AsDecodeError unwraps err to a DecodeError, if there is one in its chain.
func AsDecodeError(err error) (*DecodeError, bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Common errors
var (
	ErrTruncated = &DecodeError{Kind: KindStream, Detail: "unexpected end of stream"}
)
