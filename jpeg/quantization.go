package jpeg

// QuantizationTable holds one dequantization table of 64 coefficients in
// zigzag order. Bits records the serialized precision: 8-bit tables store
// one byte per coefficient, 16-bit tables two bytes big-endian.
type QuantizationTable struct {
	Bits   uint8
	Values [64]uint16
}

// parseDQTPayload walks a DQT payload, which is a concatenation of tables,
// and installs each into its destination slot. A payload that runs short
// mid-table is rejected.
func parseDQTPayload(payload []byte, slots *[4]*QuantizationTable) error {
	if len(payload) == 0 {
		return newError(KindInvalidQuantizationTable, "empty DQT payload")
	}
	pos := 0
	for pos < len(payload) {
		flags := payload[pos]
		pos++
		precision := flags >> 4
		slot := flags & 0x0F
		if precision > 1 {
			return errorf(KindInvalidQuantizationTable, "precision flag %d out of range", precision)
		}
		if slot > 3 {
			return errorf(KindInvalidQuantizationTable, "destination slot %d out of range", slot)
		}
		table := &QuantizationTable{}
		if precision == 0 {
			table.Bits = 8
			if pos+64 > len(payload) {
				return newError(KindInvalidQuantizationTable, "table runs past end of payload")
			}
			for i := 0; i < 64; i++ {
				table.Values[i] = uint16(payload[pos+i])
			}
			pos += 64
		} else {
			table.Bits = 16
			if pos+128 > len(payload) {
				return newError(KindInvalidQuantizationTable, "table runs past end of payload")
			}
			for i := 0; i < 64; i++ {
				table.Values[i] = uint16(payload[pos+2*i])<<8 | uint16(payload[pos+2*i+1])
			}
			pos += 128
		}
		slots[slot] = table
	}
	return nil
}

// Raster returns the table reordered from zigzag to raster order, for
// display and for collaborators that index coefficients row major.
func (t *QuantizationTable) Raster() [64]uint16 {
	var out [64]uint16
	for i, v := range t.Values {
		out[ZigzagToRaster[i]] = v
	}
	return out
}
