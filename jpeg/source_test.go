package jpeg

import (
	"bytes"
	"testing"
)

// TestReadNextMarker verifies that runs of 0xFF fill bytes collapse to the
// single marker they introduce, regardless of run length.
func TestReadNextMarker(t *testing.T) {
	for _, fill := range []int{1, 2, 3, 16, 255} {
		data := bytes.Repeat([]byte{0xFF}, fill)
		data = append(data, MarkerSOI)
		src := NewByteSource(bytes.NewReader(data))
		m, err := src.ReadNextMarker()
		if err != nil {
			t.Fatalf("fill %d: unexpected error: %v", fill, err)
		}
		if m != MarkerSOI {
			t.Errorf("fill %d: got marker %#02x, want SOI", fill, m)
		}
	}
}

func TestReadNextMarkerStructural(t *testing.T) {
	src := NewByteSource(bytes.NewReader([]byte{0x12, 0xFF, 0xD8}))
	if _, err := src.ReadNextMarker(); !IsKind(err, KindStructural) {
		t.Errorf("got %v, want Structural error", err)
	}
}

func TestReadNextMarkerTruncated(t *testing.T) {
	for _, data := range [][]byte{{}, {0xFF}, {0xFF, 0xFF, 0xFF}} {
		src := NewByteSource(bytes.NewReader(data))
		if _, err := src.ReadNextMarker(); !IsKind(err, KindStream) {
			t.Errorf("data %x: got %v, want Stream error", data, err)
		}
	}
}

func TestReadUint16(t *testing.T) {
	src := NewByteSource(bytes.NewReader([]byte{0x12, 0x34}))
	v, err := src.ReadUint16()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 0x1234 {
		t.Errorf("got %#04x, want 0x1234", v)
	}
}

func TestReadMarkerPayload(t *testing.T) {
	t.Run("normal", func(t *testing.T) {
		src := NewByteSource(bytes.NewReader([]byte{0x00, 0x05, 0xAA, 0xBB, 0xCC}))
		payload, err := src.ReadMarkerPayload()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(payload, []byte{0xAA, 0xBB, 0xCC}) {
			t.Errorf("got % x, want AA BB CC", payload)
		}
	})

	t.Run("length shorter than field", func(t *testing.T) {
		src := NewByteSource(bytes.NewReader([]byte{0x00, 0x01}))
		if _, err := src.ReadMarkerPayload(); !IsKind(err, KindSyntax) {
			t.Errorf("got %v, want Syntax error", err)
		}
	})

	t.Run("truncated payload", func(t *testing.T) {
		src := NewByteSource(bytes.NewReader([]byte{0x00, 0x10, 0xAA}))
		if _, err := src.ReadMarkerPayload(); !IsKind(err, KindStream) {
			t.Errorf("got %v, want Stream error", err)
		}
	})

	t.Run("empty payload", func(t *testing.T) {
		src := NewByteSource(bytes.NewReader([]byte{0x00, 0x02}))
		payload, err := src.ReadMarkerPayload()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(payload) != 0 {
			t.Errorf("got %d payload bytes, want 0", len(payload))
		}
	})
}
