// Package jpeg decodes the segment and entropy-coded layers of a JPEG
// bitstream: markers, quantization and Huffman tables, frame and scan
// headers, and the spectral coefficients of each minimum coded unit.
// Inverse DCT, color conversion and pixel emission are left to the caller.
package jpeg

import "fmt"

// JPEG marker codes
const (
	MarkerSOI   = 0xD8 // Start Of Image
	MarkerEOI   = 0xD9 // End Of Image
	MarkerSOS   = 0xDA // Start Of Scan
	MarkerDQT   = 0xDB // Define Quantization Table
	MarkerDNL   = 0xDC // Define Number of Lines
	MarkerDRI   = 0xDD // Define Restart Interval
	MarkerDHT   = 0xC4 // Define Huffman Table
	MarkerDAC   = 0xCC // Define Arithmetic Coding conditioning
	MarkerAPP0  = 0xE0 // Application Segment 0 (JFIF)
	MarkerAPP15 = 0xEF // Application Segment 15
	MarkerSOF0  = 0xC0 // Baseline DCT
	MarkerSOF1  = 0xC1 // Extended Sequential DCT
	MarkerSOF2  = 0xC2 // Progressive DCT
	MarkerRST0  = 0xD0 // Restart marker 0
	MarkerRST7  = 0xD7 // Restart marker 7
	MarkerCOM   = 0xFE // Comment
)

// isRestartMarker reports whether m is one of RST0..RST7.
func isRestartMarker(m byte) bool {
	return m >= MarkerRST0 && m <= MarkerRST7
}

// isAppMarker reports whether m is one of APP0..APP15.
func isAppMarker(m byte) bool {
	return m >= MarkerAPP0 && m <= MarkerAPP15
}

// isFrameMarker reports whether m is any SOF marker, supported or not.
// DHT (C4), DAC (CC) and the SOF8/JPG code (C8) share the SOFn range and
// are excluded.
func isFrameMarker(m byte) bool {
	switch m {
	case MarkerDHT, MarkerDAC, 0xC8:
		return false
	}
	return m >= 0xC0 && m <= 0xCF
}

// MarkerName returns a short human-readable name for a marker code.
func MarkerName(m byte) string {
	switch {
	case m == MarkerSOI:
		return "SOI"
	case m == MarkerEOI:
		return "EOI"
	case m == MarkerSOS:
		return "SOS"
	case m == MarkerDQT:
		return "DQT"
	case m == MarkerDNL:
		return "DNL"
	case m == MarkerDRI:
		return "DRI"
	case m == MarkerDHT:
		return "DHT"
	case m == MarkerDAC:
		return "DAC"
	case m == MarkerCOM:
		return "COM"
	case isAppMarker(m):
		return fmt.Sprintf("APP%d", m-MarkerAPP0)
	case isRestartMarker(m):
		return fmt.Sprintf("RST%d", m-MarkerRST0)
	case isFrameMarker(m):
		return fmt.Sprintf("SOF%d", m&0x0F)
	}
	return fmt.Sprintf("marker %#02x", m)
}

// ZigzagToRaster maps zigzag coefficient order to raster (row major) order.
var ZigzagToRaster = [64]uint8{
	0, 1, 8, 16, 9, 2, 3, 10, 17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34, 27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36, 29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46, 53, 60, 61, 54, 47, 55, 62, 63,
}
