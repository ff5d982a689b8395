package style

import (
	"fmt"
	"strings"
)

// fallbackHex replaces any palette entry that is not six hex digits.
const fallbackHex = "FFFFFF"

// colorPrefix starts every ASS color literal.
const colorPrefix = "&H"

// RGBToBGR reorders an RRGGBB string into the BBGGRR order used by ASS
// styles. A leading '#' is accepted. Inputs that are not six characters long
// yield white.
func RGBToBGR(hex string) string {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return fallbackHex
	}
	return hex[4:6] + hex[2:4] + hex[0:2]
}

// ClampAlpha limits alpha to the 0-255 range.
func ClampAlpha(alpha int) int {
	switch {
	case alpha < 0:
		return 0
	case alpha > 255:
		return 255
	default:
		return alpha
	}
}

// EncodeColor returns the &HAABBGGRR token for a palette color. Alpha 0 is
// opaque and 255 fully transparent. Unknown names encode as white.
func EncodeColor(name string, alpha int) string {
	rgb, ok := palette[name]
	if !ok {
		rgb = fallbackHex
	}
	return fmt.Sprintf("%s%02X%s", colorPrefix, ClampAlpha(alpha), RGBToBGR(rgb))
}
