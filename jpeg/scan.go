package jpeg

// ScanComponent selects one frame component and its entropy table slots for
// a scan.
type ScanComponent struct {
	ComponentID uint8
	DCTable     uint8
	ACTable     uint8
}

// ScanHeader is a parsed SOS segment. Band is the half-open range of
// spectral positions [Ss, Se+1) the scan carries; Exponent is the
// successive-approximation point transform Al. Ah is validated during
// parsing but not retained.
type ScanHeader struct {
	Components []ScanComponent
	BandStart  int
	BandEnd    int
	Exponent   uint8
}

// parseScanHeader parses an SOS payload.
func parseScanHeader(payload []byte) (*ScanHeader, error) {
	if len(payload) < 1 {
		return nil, newError(KindInvalidScanHeader, "empty payload")
	}
	count := int(payload[0])
	if count < 1 || count > 4 {
		return nil, errorf(KindInvalidScanHeader, "scan declares %d components", count)
	}
	if len(payload) != 4+2*count {
		return nil, errorf(KindInvalidScanHeader,
			"payload of %d bytes does not match %d components", len(payload), count)
	}

	sh := &ScanHeader{Components: make([]ScanComponent, 0, count)}
	for i := 0; i < count; i++ {
		id := payload[1+2*i]
		selectors := payload[2+2*i]
		sc := ScanComponent{
			ComponentID: id,
			DCTable:     selectors >> 4,
			ACTable:     selectors & 0x0F,
		}
		if sc.DCTable > 3 || sc.ACTable > 3 {
			return nil, errorf(KindInvalidScanHeader,
				"component %#02x table selectors %d/%d out of range", id, sc.DCTable, sc.ACTable)
		}
		for _, prev := range sh.Components {
			if prev.ComponentID == id {
				return nil, errorf(KindInvalidScanHeader, "duplicate component id %#02x", id)
			}
		}
		sh.Components = append(sh.Components, sc)
	}

	ss := int(payload[1+2*count])
	se := int(payload[2+2*count])
	approx := payload[3+2*count]
	if ss > 63 || se > 63 || ss > se {
		return nil, errorf(KindInvalidScanHeader, "spectral selection %d..%d out of range", ss, se)
	}
	ah := approx >> 4
	al := approx & 0x0F
	if ah > 13 || al > 13 {
		return nil, errorf(KindInvalidScanHeader,
			"successive approximation %d/%d out of range", ah, al)
	}
	sh.BandStart = ss
	sh.BandEnd = se + 1
	sh.Exponent = al
	return sh, nil
}
