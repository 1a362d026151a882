package jpeg

import "github.com/pkg/errors"

// Context holds the currently installed decoder tables: four slots each of
// quantization, DC Huffman and AC Huffman tables, plus the restart
// interval. One Context lives for the whole decode; DQT and DHT segments
// replace slot occupants in place.
type Context struct {
	Quant           [4]*QuantizationTable
	HuffDC          [4]*HuffmanTable
	HuffAC          [4]*HuffmanTable
	RestartInterval int
}

// NewContext creates an empty Context.
func NewContext() *Context {
	return &Context{}
}

// Update ingests the run of ancillary segments that may precede a frame
// header or a scan header: table definitions, comments and application
// segments. marker is the segment marker already read from src; Update
// consumes segments until it sees a marker it does not own and returns
// that marker for the caller to dispatch.
func (c *Context) Update(src *ByteSource, marker byte) (byte, error) {
	for {
		switch {
		case marker == MarkerDQT:
			payload, err := src.ReadMarkerPayload()
			if err != nil {
				return 0, errors.Wrap(err, "reading DQT segment")
			}
			if err := parseDQTPayload(payload, &c.Quant); err != nil {
				return 0, err
			}
		case marker == MarkerDHT:
			payload, err := src.ReadMarkerPayload()
			if err != nil {
				return 0, errors.Wrap(err, "reading DHT segment")
			}
			if err := parseDHTPayload(payload, &c.HuffDC, &c.HuffAC); err != nil {
				return 0, err
			}
		case marker == MarkerDRI:
			return 0, newError(KindUnimplemented, "restart intervals")
		case marker == MarkerDAC:
			return 0, newError(KindUnsupported, "arithmetic coding")
		case marker == MarkerCOM || isAppMarker(marker):
			if _, err := src.ReadMarkerPayload(); err != nil {
				return 0, errors.Wrapf(err, "reading %s segment", MarkerName(marker))
			}
		default:
			return marker, nil
		}
		var err error
		marker, err = src.ReadNextMarker()
		if err != nil {
			return 0, err
		}
	}
}

// Restart reports whether marker is one of the restart markers RST0..RST7.
func (c *Context) Restart(marker byte) bool {
	return isRestartMarker(marker)
}
