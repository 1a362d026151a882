package jpeg

// DensityUnit is the unit of the JFIF pixel density fields.
type DensityUnit uint8

const (
	// DensityAspectOnly means the density fields carry only an aspect ratio.
	DensityAspectOnly DensityUnit = 0
	// DensityDotsPerInch means pixels per inch.
	DensityDotsPerInch DensityUnit = 1
	// DensityDotsPerCM means pixels per centimeter.
	DensityDotsPerCM DensityUnit = 2
)

func (u DensityUnit) String() string {
	switch u {
	case DensityAspectOnly:
		return "aspect ratio"
	case DensityDotsPerInch:
		return "dots per inch"
	case DensityDotsPerCM:
		return "dots per cm"
	}
	return "unknown"
}

// JFIFSegment is the parsed APP0 JFIF header. Thumbnail bytes are ignored.
type JFIFSegment struct {
	VersionMajor uint8
	VersionMinor uint8
	Unit         DensityUnit
	DensityX     uint16
	DensityY     uint16
}

var jfifMagic = [5]byte{'J', 'F', 'I', 'F', 0x00}

// parseJFIF parses an APP0 payload as a JFIF 1.0 to 1.2 header.
func parseJFIF(payload []byte) (*JFIFSegment, error) {
	if len(payload) < 14 {
		return nil, errorf(KindInvalidJFIFHeader, "payload of %d bytes too short", len(payload))
	}
	for i, b := range jfifMagic {
		if payload[i] != b {
			return nil, newError(KindInvalidJFIFHeader, "missing JFIF identifier")
		}
	}
	seg := &JFIFSegment{
		VersionMajor: payload[5],
		VersionMinor: payload[6],
		Unit:         DensityUnit(payload[7]),
		DensityX:     uint16(payload[8])<<8 | uint16(payload[9]),
		DensityY:     uint16(payload[10])<<8 | uint16(payload[11]),
	}
	if seg.VersionMajor != 1 || seg.VersionMinor > 2 {
		return nil, errorf(KindInvalidJFIFHeader, "version %d.%02d not recognized",
			seg.VersionMajor, seg.VersionMinor)
	}
	if seg.Unit > DensityDotsPerCM {
		return nil, errorf(KindUnsupported, "density unit %d", uint8(seg.Unit))
	}
	return seg, nil
}
