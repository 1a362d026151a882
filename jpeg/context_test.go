package jpeg

import (
	"bytes"
	"testing"
)

// appendSegmentBody appends a segment's 2-byte length and payload.
func appendSegmentBody(buf *bytes.Buffer, payload []byte) {
	length := len(payload) + 2
	buf.WriteByte(byte(length >> 8))
	buf.WriteByte(byte(length))
	buf.Write(payload)
}

func dqtSegmentPayload(slot byte, fill byte) []byte {
	payload := make([]byte, 65)
	payload[0] = slot
	for i := 1; i < 65; i++ {
		payload[i] = fill
	}
	return payload
}

func dhtSegmentPayload(flags byte) []byte {
	payload := []byte{flags}
	payload = append(payload, dhtTableBytes([16]uint8{1}, []byte{0x02})...)
	return payload
}

// TestContextUpdate runs a run of ancillary segments and checks the tables
// land in their slots and the stopping marker is handed back.
func TestContextUpdate(t *testing.T) {
	var buf bytes.Buffer
	// First marker (DQT) is pre-read by the caller; the stream starts at
	// its length field.
	appendSegmentBody(&buf, dqtSegmentPayload(0x00, 7))
	buf.Write([]byte{0xFF, MarkerCOM})
	appendSegmentBody(&buf, []byte("a comment"))
	buf.Write([]byte{0xFF, 0xE1}) // APP1
	appendSegmentBody(&buf, []byte{0xDE, 0xAD})
	buf.Write([]byte{0xFF, MarkerDHT})
	appendSegmentBody(&buf, dhtSegmentPayload(0x00))
	buf.Write([]byte{0xFF, MarkerSOS})

	ctx := NewContext()
	marker, err := ctx.Update(NewByteSource(&buf), MarkerDQT)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if marker != MarkerSOS {
		t.Errorf("got stop marker %#02x, want SOS", marker)
	}
	if ctx.Quant[0] == nil {
		t.Error("quantization slot 0 not installed")
	}
	if ctx.HuffDC[0] == nil {
		t.Error("DC Huffman slot 0 not installed")
	}
	if ctx.HuffAC[0] != nil {
		t.Error("unexpected AC Huffman table")
	}
}

// TestContextSlotReplacement feeds two DQTs aimed at slot 0 and checks the
// second wins.
func TestContextSlotReplacement(t *testing.T) {
	var buf bytes.Buffer
	appendSegmentBody(&buf, dqtSegmentPayload(0x00, 0x11))
	buf.Write([]byte{0xFF, MarkerDQT})
	appendSegmentBody(&buf, dqtSegmentPayload(0x00, 0x22))
	buf.Write([]byte{0xFF, MarkerSOS})

	ctx := NewContext()
	if _, err := ctx.Update(NewByteSource(&buf), MarkerDQT); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range ctx.Quant[0].Values {
		if v != 0x22 {
			t.Fatalf("coefficient %d: got %#02x, want 0x22", i, v)
		}
	}
}

func TestContextRejectsDRI(t *testing.T) {
	ctx := NewContext()
	src := NewByteSource(bytes.NewReader([]byte{0x00, 0x04, 0x00, 0x10}))
	if _, err := ctx.Update(src, MarkerDRI); !IsKind(err, KindUnimplemented) {
		t.Errorf("got %v, want Unimplemented", err)
	}
}

func TestContextRejectsDAC(t *testing.T) {
	ctx := NewContext()
	src := NewByteSource(bytes.NewReader([]byte{0x00, 0x04, 0x00, 0x00}))
	if _, err := ctx.Update(src, MarkerDAC); !IsKind(err, KindUnsupported) {
		t.Errorf("got %v, want Unsupported", err)
	}
}

// TestContextLeavesForeignMarker checks that Update does not consume a
// marker it does not own.
func TestContextLeavesForeignMarker(t *testing.T) {
	ctx := NewContext()
	src := NewByteSource(bytes.NewReader(nil))
	marker, err := ctx.Update(src, MarkerSOF0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if marker != MarkerSOF0 {
		t.Errorf("got %#02x, want SOF0 handed back untouched", marker)
	}
}

func TestContextRestart(t *testing.T) {
	ctx := NewContext()
	for m := byte(MarkerRST0); m <= MarkerRST7; m++ {
		if !ctx.Restart(m) {
			t.Errorf("marker %#02x should be a restart", m)
		}
	}
	for _, m := range []byte{MarkerSOI, MarkerEOI, MarkerSOS, 0xCF} {
		if ctx.Restart(m) {
			t.Errorf("marker %#02x should not be a restart", m)
		}
	}
}
