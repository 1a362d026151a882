package jpeg

import "github.com/pkg/errors"

// HuffmanEntry is one decoded symbol: the table value and the bit length of
// the codeword that produced it. A Length of 16 with a Value of 0 is the
// reserved result for the all-ones codeword, which no conforming encoder
// emits.
type HuffmanEntry struct {
	Value  uint8
	Length uint8
}

// reserved reports whether the entry is the all-ones sentinel.
func (e HuffmanEntry) reserved() bool {
	return e.Value == 0 && e.Length == 16
}

// HuffmanTable is a canonical JPEG Huffman table flattened into a two-level
// lookup array. The first n entries cover every codeword of 8 bits or
// fewer, one entry per value of the codeword's top byte. Top bytes of n and
// above are internal prefixes; because canonical codes pack leaves to the
// left, each such prefix owns a contiguous 256-entry subtable, so the entry
// for a long codeword sits at codeword - 255*n. A decode is one shift, one
// compare and one load, with no tree walk.
type HuffmanTable struct {
	storage []HuffmanEntry
	n       int
	zeta    int
}

// precalculate validates the leaf counts as a 16-level canonical code tree
// and sizes the flattened table. It walks the implied binary tree level by
// level: each level doubles the internal nodes and converts leafCounts[l]
// of them to leaves. The tree must never go negative and must keep at
// least the all-ones path internal through the last level. It returns the
// count n of level-0 entries and the total entry count z.
func precalculate(leafCounts [16]uint8) (n, z int, err error) {
	internal := 1
	for level := 0; level < 16; level++ {
		internal = 2*internal - int(leafCounts[level])
		if internal < 0 {
			return 0, 0, errorf(KindInvalidHuffmanTable,
				"oversubscribed code tree at length %d", level+1)
		}
		if level == 7 {
			n = 256 - internal
		}
		if level >= 8 {
			z += int(leafCounts[level]) << (15 - level)
		}
	}
	if internal < 1 {
		return 0, 0, newError(KindInvalidHuffmanTable,
			"code tree exhausts the reserved all-ones path")
	}
	z += n
	return n, z, nil
}

// NewHuffmanTable builds the flattened decode table from the 16 leaf counts
// and the leaf values in canonical order.
func NewHuffmanTable(leafCounts [16]uint8, leafValues []byte) (*HuffmanTable, error) {
	total := 0
	for _, c := range leafCounts {
		total += int(c)
	}
	if total != len(leafValues) {
		return nil, errorf(KindInvalidHuffmanTable,
			"leaf counts sum to %d but %d values supplied", total, len(leafValues))
	}

	n, z, err := precalculate(leafCounts)
	if err != nil {
		return nil, err
	}

	// shadow packs both span widths into one shifting register: the high
	// byte is the number of level-0 entries a codeword of the current
	// length occupies, the low byte the number of level-1 entries. After
	// eight shifts the high byte has drained into the low byte, so
	// shadow & 0xFF is the right span at every level.
	table := &HuffmanTable{
		storage: make([]HuffmanEntry, 0, z),
		n:       n,
		zeta:    z + n*255,
	}
	shadow := 0x8080
	vi := 0
	for level := 0; level < 16; level++ {
		span := shadow & 0xFF
		for c := 0; c < int(leafCounts[level]); c++ {
			entry := HuffmanEntry{Value: leafValues[vi], Length: uint8(level + 1)}
			vi++
			for s := 0; s < span; s++ {
				table.storage = append(table.storage, entry)
			}
		}
		shadow >>= 1
	}
	if len(table.storage) != z {
		return nil, errorf(KindInvalidHuffmanTable,
			"table construction produced %d entries, expected %d", len(table.storage), z)
	}
	return table, nil
}

// Decode looks up a 16-bit codeword window, most significant bit first.
// Trailing bits beyond the codeword's length are ignored. The all-ones
// codeword and any unassigned prefix return the reserved (0, 16) entry.
func (t *HuffmanTable) Decode(codeword uint16) HuffmanEntry {
	i := int(codeword >> 8)
	if i < t.n {
		return t.storage[i]
	}
	if int(codeword) >= t.zeta {
		return HuffmanEntry{Value: 0, Length: 16}
	}
	return t.storage[int(codeword)-255*t.n]
}

// parseDHTPayload walks a DHT payload, which is a concatenation of tables,
// building each and installing it into the DC or AC slot its flags select.
func parseDHTPayload(payload []byte, dc, ac *[4]*HuffmanTable) error {
	if len(payload) == 0 {
		return newError(KindInvalidHuffmanTable, "empty DHT payload")
	}
	pos := 0
	for pos < len(payload) {
		flags := payload[pos]
		pos++
		class := flags >> 4
		slot := flags & 0x0F
		if class > 1 {
			return errorf(KindInvalidHuffmanTable, "table class %d out of range", class)
		}
		if slot > 3 {
			return errorf(KindInvalidHuffmanTable, "destination slot %d out of range", slot)
		}
		if pos+16 > len(payload) {
			return newError(KindInvalidHuffmanTable, "leaf counts run past end of payload")
		}
		var counts [16]uint8
		total := 0
		for i := 0; i < 16; i++ {
			counts[i] = payload[pos+i]
			total += int(counts[i])
		}
		pos += 16
		if pos+total > len(payload) {
			return newError(KindInvalidHuffmanTable, "leaf values run past end of payload")
		}
		table, err := NewHuffmanTable(counts, payload[pos:pos+total])
		if err != nil {
			return errors.Wrapf(err, "building table for slot %d", slot)
		}
		pos += total
		if class == 0 {
			dc[slot] = table
		} else {
			ac[slot] = table
		}
	}
	return nil
}
