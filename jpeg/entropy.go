package jpeg

// EntropySegment is the de-stuffed byte payload of one entropy-coded segment
// together with the marker that terminated it. The terminator has been
// scanned past its 0xFF fill but is otherwise left for the caller to
// dispatch as the next marker.
type EntropySegment struct {
	Data   []byte
	Marker byte
}

// ReadEntropySegment consumes entropy-coded data from src until a marker.
// Stuffed 0xFF 0x00 pairs collapse to a single 0xFF data byte; any other
// byte after 0xFF ends the segment and becomes the terminator marker.
func ReadEntropySegment(src *ByteSource) (EntropySegment, error) {
	var seg EntropySegment
	seg.Data = make([]byte, 0, 4096)
	for {
		b, err := src.ReadByte()
		if err != nil {
			return EntropySegment{}, err
		}
		if b != 0xFF {
			seg.Data = append(seg.Data, b)
			continue
		}
		n, err := src.ReadByte()
		if err != nil {
			return EntropySegment{}, err
		}
		if n == 0x00 {
			seg.Data = append(seg.Data, 0xFF)
			continue
		}
		// Marker fill collapses the same way it does between segments.
		for n == 0xFF {
			n, err = src.ReadByte()
			if err != nil {
				return EntropySegment{}, err
			}
		}
		seg.Marker = n
		return seg, nil
	}
}
