package jpeg

import "github.com/pkg/errors"

// Spectra accumulates the spectral coefficients of a frame, indexed by MCU
// group, block within the group and coefficient position. The block layout
// of a group follows the frame's component order, each component
// contributing samplingX by samplingY blocks. The backing store grows by
// whole groups as decoding proceeds, so a frame whose height arrives late
// in a DNL segment needs no up-front size.
type Spectra struct {
	data        []int16
	groupStride int
	offsets     []int
	blocks      []int
}

// NewSpectra lays out a coefficient store for the frame's components.
func NewSpectra(frame *FrameHeader) *Spectra {
	s := &Spectra{
		offsets: make([]int, len(frame.Components)),
		blocks:  make([]int, len(frame.Components)),
	}
	total := 0
	for i, c := range frame.Components {
		s.offsets[i] = total
		s.blocks[i] = c.SamplingX * c.SamplingY
		total += s.blocks[i]
	}
	s.groupStride = total * 64
	return s
}

// Groups returns the number of MCU groups decoded so far.
func (s *Spectra) Groups() int {
	if s.groupStride == 0 {
		return 0
	}
	return len(s.data) / s.groupStride
}

// BlocksPerGroup returns the number of blocks in one MCU group.
func (s *Spectra) BlocksPerGroup() int {
	return s.groupStride / 64
}

// ComponentBlocks returns the index of the first block and the block count
// that frame component i owns within each group.
func (s *Spectra) ComponentBlocks(i int) (first, count int) {
	return s.offsets[i], s.blocks[i]
}

// At returns the coefficient at [group, block, k].
func (s *Spectra) At(group, block, k int) int16 {
	return s.data[group*s.groupStride+block*64+k]
}

// extend grows the store with zeroed coefficients through the given group.
func (s *Spectra) extend(group int) {
	want := (group + 1) * s.groupStride
	for len(s.data) < want {
		s.data = append(s.data, make([]int16, want-len(s.data))...)
	}
}

func (s *Spectra) at(group, block, k int) *int16 {
	return &s.data[group*s.groupStride+block*64+k]
}

// Amplitude decodes a JPEG signed coefficient from the top count bits of a
// left-aligned bit pattern. A pattern whose leading bit is set is the
// positive value itself; a cleared leading bit means the value is the
// pattern minus 2^count - 1. Both cases reduce to one add of a mask
// derived from the flipped sign bit.
func Amplitude(count uint8, pattern uint16) int16 {
	if count == 0 {
		return 0
	}
	top := int32(pattern >> (16 - count))
	flip := int32(pattern>>15) ^ 1
	return int16(top + flip - flip<<count)
}

// scanComponentState resolves one scan component against the frame layout
// and the installed tables.
type scanComponentState struct {
	first int
	count int
	dc    *HuffmanTable
	ac    *HuffmanTable
}

// DecodeScan consumes one entropy-coded segment through the Huffman
// codebook, storing coefficients for every MCU group the frame requires.
// When the frame height is still zero, pending a DNL segment, groups are
// decoded until the bitstream is exhausted.
func (s *Spectra) DecodeScan(bits *Bitstream, frame *FrameHeader, scan *ScanHeader, ctx *Context) error {
	states := make([]scanComponentState, len(scan.Components))
	for i, sc := range scan.Components {
		ci, ok := frame.Component(sc.ComponentID)
		if !ok {
			return errorf(KindSyntax, "scan selects component %#02x absent from frame", sc.ComponentID)
		}
		st := scanComponentState{}
		st.first, st.count = s.ComponentBlocks(ci)
		if scan.BandStart == 0 {
			st.dc = ctx.HuffDC[sc.DCTable]
			if st.dc == nil {
				return errorf(KindSyntax, "no DC Huffman table in slot %d", sc.DCTable)
			}
		}
		if scan.BandEnd > 1 {
			st.ac = ctx.HuffAC[sc.ACTable]
			if st.ac == nil {
				return errorf(KindSyntax, "no AC Huffman table in slot %d", sc.ACTable)
			}
		}
		states[i] = st
	}

	total := frame.MCUCount()
	for group := 0; total == 0 || group < total; group++ {
		if _, ok := bits.Front(); !ok {
			if total == 0 {
				return nil
			}
			return errorf(KindSyntax, "entropy data exhausted after %d of %d groups", group, total)
		}
		s.extend(group)
		for i := range states {
			st := &states[i]
			for b := 0; b < st.count; b++ {
				if err := s.decodeBlock(bits, st, scan, group, st.first+b); err != nil {
					return errors.Wrapf(err, "group %d block %d", group, st.first+b)
				}
			}
		}
	}
	return nil
}

// decodeBlock decodes the scan's spectral band for one block. The DC
// difference, when the band includes position zero, is a size codeword
// followed by that many amplitude bits; AC positions are run-length coded
// with the zero run in the symbol's high nibble and the amplitude size in
// the low nibble, 0x00 ending the block and 0xF0 skipping sixteen zeros.
func (s *Spectra) decodeBlock(bits *Bitstream, st *scanComponentState, scan *ScanHeader, group, block int) error {
	if scan.BandStart == 0 {
		window, ok := bits.Front()
		if !ok {
			return ErrTruncated
		}
		entry := st.dc.Decode(window)
		if entry.reserved() {
			return newError(KindSyntax, "reserved Huffman codeword in DC data")
		}
		bits.Pop(uint(entry.Length))
		size := entry.Value
		if size > 15 {
			return errorf(KindSyntax, "DC difference size %d out of range", size)
		}
		if size > 0 {
			window, ok = bits.Front()
			if !ok {
				return ErrTruncated
			}
			bits.Pop(uint(size))
			*s.at(group, block, 0) |= Amplitude(size, window) << scan.Exponent
		}
	}

	k := scan.BandStart
	if k < 1 {
		k = 1
	}
	for k < scan.BandEnd {
		window, ok := bits.Front()
		if !ok {
			return ErrTruncated
		}
		entry := st.ac.Decode(window)
		if entry.reserved() {
			return newError(KindSyntax, "reserved Huffman codeword in AC data")
		}
		bits.Pop(uint(entry.Length))
		run := int(entry.Value >> 4)
		size := entry.Value & 0x0F
		if size == 0 {
			if entry.Value == 0x00 {
				return nil
			}
			if entry.Value == 0xF0 {
				k += 16
				if k > scan.BandEnd {
					return newError(KindSyntax, "zero run passes end of band")
				}
				continue
			}
			return errorf(KindSyntax, "AC symbol %#02x mixes run and zero size", entry.Value)
		}
		k += run
		if k >= scan.BandEnd {
			return newError(KindSyntax, "zero run passes end of band")
		}
		window, ok = bits.Front()
		if !ok {
			return ErrTruncated
		}
		bits.Pop(uint(size))
		*s.at(group, block, k) |= Amplitude(size, window) << scan.Exponent
		k++
	}
	return nil
}
