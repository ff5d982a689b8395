package style

import (
	"fmt"
	"strings"
)

// Fonts offered to users. Rendering needs the font installed on the host
// (WenQuanYi Zen Hei ships in the fonts-wqy-zenhei package).
const (
	FontArial           = "Arial"
	FontWenQuanYiZenHei = "WenQuanYi Zen Hei"
)

// Border styles understood by libass.
const (
	BorderOutline   = 1
	BorderOpaqueBox = 3
)

// Range limits for the numeric style fields.
const (
	MinFontSize  = 5
	MaxFontSize  = 100
	MinAlpha     = 0
	MaxAlpha     = 255
	MinOutline   = 0
	MaxOutline   = 10
	MinShadow    = 0
	MaxShadow    = 10
	MinAlignment = 1
	MaxAlignment = 9
	MinMarginV   = 0
	MaxMarginV   = 500
)

var (
	fonts        = []string{FontArial, FontWenQuanYiZenHei}
	borderStyles = []int{BorderOutline, BorderOpaqueBox}
)

// Fonts returns the selectable font names.
func Fonts() []string { return append([]string(nil), fonts...) }

// BorderStyles returns the selectable border styles.
func BorderStyles() []int { return append([]int(nil), borderStyles...) }

// Config captures every user-chosen subtitle rendering parameter.
// Alignment follows the numeric keypad layout (2 = bottom centre).
type Config struct {
	FontName     string
	FontSize     int
	PrimaryColor string
	OutlineColor string
	BackColor    string
	OutlineAlpha int
	BackAlpha    int
	BorderStyle  int
	Outline      int
	Shadow       int
	Alignment    int
	MarginV      int
}

// Default returns the stock subtitle style: yellow text on a half
// transparent black box, bottom centre.
func Default() Config {
	return Config{
		FontName:     FontArial,
		FontSize:     10,
		PrimaryColor: "Yellow",
		OutlineColor: "Black",
		BackColor:    "Black",
		OutlineAlpha: 0,
		BackAlpha:    128,
		BorderStyle:  BorderOpaqueBox,
		Outline:      1,
		Shadow:       0,
		Alignment:    2,
		MarginV:      25,
	}
}

// Validate reports the first field outside its allowed range. Alpha values
// are not checked here because encoding clamps them.
func (c Config) Validate() error {
	if !containsString(fonts, c.FontName) {
		return fmt.Errorf("style: font %q not supported (choose %s)", c.FontName, strings.Join(fonts, ", "))
	}
	if err := checkRange("font size", c.FontSize, MinFontSize, MaxFontSize); err != nil {
		return err
	}
	for _, color := range []struct {
		field string
		name  string
	}{
		{"primary color", c.PrimaryColor},
		{"outline color", c.OutlineColor},
		{"back color", c.BackColor},
	} {
		if !HasColor(color.name) {
			return fmt.Errorf("style: %s %q is not a known color", color.field, color.name)
		}
	}
	if c.BorderStyle != BorderOutline && c.BorderStyle != BorderOpaqueBox {
		return fmt.Errorf("style: border style %d not supported (choose %d or %d)", c.BorderStyle, BorderOutline, BorderOpaqueBox)
	}
	if err := checkRange("outline", c.Outline, MinOutline, MaxOutline); err != nil {
		return err
	}
	if err := checkRange("shadow", c.Shadow, MinShadow, MaxShadow); err != nil {
		return err
	}
	if err := checkRange("alignment", c.Alignment, MinAlignment, MaxAlignment); err != nil {
		return err
	}
	return checkRange("vertical margin", c.MarginV, MinMarginV, MaxMarginV)
}

// String renders the force_style argument for ffmpeg's subtitles filter.
// The primary color is always fully opaque.
func (c Config) String() string {
	pairs := []string{
		"Fontname=" + c.FontName,
		fmt.Sprintf("Fontsize=%d", c.FontSize),
		"PrimaryColour=" + EncodeColor(c.PrimaryColor, 0),
		"OutlineColour=" + EncodeColor(c.OutlineColor, c.OutlineAlpha),
		"BackColour=" + EncodeColor(c.BackColor, c.BackAlpha),
		fmt.Sprintf("BorderStyle=%d", c.BorderStyle),
		fmt.Sprintf("Outline=%d", c.Outline),
		fmt.Sprintf("Shadow=%d", c.Shadow),
		fmt.Sprintf("Alignment=%d", c.Alignment),
		fmt.Sprintf("MarginV=%d", c.MarginV),
	}
	return strings.Join(pairs, ",")
}

func checkRange(field string, value, lo, hi int) error {
	if value < lo || value > hi {
		return fmt.Errorf("style: %s %d out of range [%d, %d]", field, value, lo, hi)
	}
	return nil
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
