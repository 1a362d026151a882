package jpeg

import (
	"bytes"
	"testing"
)

// TestDestuffing covers the canonical example: a stuffed 0xFF 0x00 pair
// collapses to one data byte and the trailing marker terminates the
// segment without being lost.
func TestDestuffing(t *testing.T) {
	src := NewByteSource(bytes.NewReader([]byte{0x12, 0xFF, 0x00, 0x34, 0xFF, 0xD9}))
	seg, err := ReadEntropySegment(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(seg.Data, []byte{0x12, 0xFF, 0x34}) {
		t.Errorf("got data % x, want 12 FF 34", seg.Data)
	}
	if seg.Marker != MarkerEOI {
		t.Errorf("got terminator %#02x, want EOI", seg.Marker)
	}
}

// stuff applies JPEG byte stuffing: every 0xFF in the payload is followed
// by a 0x00.
func stuff(payload []byte) []byte {
	out := make([]byte, 0, len(payload)+2)
	for _, b := range payload {
		out = append(out, b)
		if b == 0xFF {
			out = append(out, 0x00)
		}
	}
	return out
}

// TestDestuffingRoundTrip stuffs arbitrary payloads, appends a marker, and
// verifies the reader returns the payload exactly.
func TestDestuffingRoundTrip(t *testing.T) {
	payloads := [][]byte{
		{},
		{0x00},
		{0xFF},
		{0xFF, 0xFF, 0xFF},
		{0x01, 0xFF, 0x02, 0xFF},
		bytes.Repeat([]byte{0xAB, 0xFF, 0x00, 0xFF}, 100),
	}
	// A deterministic pseudo-random payload exercising every byte value.
	long := make([]byte, 4096)
	seed := uint32(0x2545F491)
	for i := range long {
		seed = seed*1664525 + 1013904223
		long[i] = byte(seed >> 24)
	}
	payloads = append(payloads, long)

	for _, payload := range payloads {
		encoded := stuff(payload)
		encoded = append(encoded, 0xFF, MarkerEOI)
		src := NewByteSource(bytes.NewReader(encoded))
		seg, err := ReadEntropySegment(src)
		if err != nil {
			t.Fatalf("payload len %d: unexpected error: %v", len(payload), err)
		}
		if !bytes.Equal(seg.Data, payload) {
			t.Errorf("payload len %d: round trip mismatch", len(payload))
		}
		if seg.Marker != MarkerEOI {
			t.Errorf("payload len %d: got terminator %#02x, want EOI", len(payload), seg.Marker)
		}
	}
}

// TestDestuffingMarkerFill verifies that fill bytes before the terminator
// collapse, matching marker scanning between segments.
func TestDestuffingMarkerFill(t *testing.T) {
	src := NewByteSource(bytes.NewReader([]byte{0x11, 0xFF, 0xFF, 0xFF, 0xD0}))
	seg, err := ReadEntropySegment(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(seg.Data, []byte{0x11}) {
		t.Errorf("got data % x, want 11", seg.Data)
	}
	if seg.Marker != MarkerRST0 {
		t.Errorf("got terminator %#02x, want RST0", seg.Marker)
	}
}

func TestDestuffingTruncated(t *testing.T) {
	for _, data := range [][]byte{{0x12}, {0x12, 0xFF}, {0xFF, 0xFF}} {
		src := NewByteSource(bytes.NewReader(data))
		if _, err := ReadEntropySegment(src); !IsKind(err, KindStream) {
			t.Errorf("data % x: got %v, want Stream error", data, err)
		}
	}
}
