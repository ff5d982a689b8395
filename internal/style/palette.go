package style

import "sort"

// palette maps color names to RRGGBB hex.
var palette = map[string]string{
	// Grayscale
	"White":     "FFFFFF",
	"LightGray": "D3D3D3",
	"Silver":    "C0C0C0",
	"Gray":      "808080",
	"DarkGray":  "A9A9A9",
	"DimGray":   "696969",
	"Black":     "000000",

	// Reds
	"LightPink": "FFB6C1",
	"Pink":      "FFC0CB",
	"HotPink":   "FF69B4",
	"DeepPink":  "FF1493",
	"Salmon":    "FA8072",
	"Red":       "FF0000",
	"Crimson":   "DC143C",
	"FireBrick": "B22222",
	"DarkRed":   "8B0000",
	"Maroon":    "800000",

	// Oranges & Browns
	"PeachPuff":   "FFDAB9",
	"Bisque":      "FFE4C4",
	"SandyBrown":  "F4A460",
	"Orange":      "FFA500",
	"DarkOrange":  "FF8C00",
	"Coral":       "FF7F50",
	"Tomato":      "FF6347",
	"Peru":        "CD853F",
	"Chocolate":   "D2691E",
	"SaddleBrown": "8B4513",
	"Brown":       "A52A2A",
	"DarkBrown":   "5C4033",

	// Yellows
	"Cream":         "FFFDD0",
	"LightYellow":   "FFFFE0",
	"LemonChiffon":  "FFFACD",
	"PaleGoldenrod": "EEE8AA",
	"Khaki":         "F0E68C",
	"Yellow":        "FFFF00",
	"Gold":          "FFD700",
	"Goldenrod":     "DAA520",
	"DarkGoldenrod": "B8860B",

	// Greens
	"PaleGreen":      "98FB98",
	"LightGreen":     "90EE90",
	"Lime":           "00FF00",
	"LimeGreen":      "32CD32",
	"YellowGreen":    "9ACD32",
	"LawnGreen":      "7CFC00",
	"Green":          "008000",
	"DarkGreen":      "006400",
	"ForestGreen":    "228B22",
	"Olive":          "808000",
	"OliveDrab":      "6B8E23",
	"SeaGreen":       "2E8B57",
	"MediumSeaGreen": "3CB371",
	"DarkSeaGreen":   "8FBC8F",

	// Cyans
	"LightCyan":     "E0FFFF",
	"PaleTurquoise": "AFEEEE",
	"Aquamarine":    "7FFFD4",
	"Turquoise":     "40E0D0",
	"Cyan":          "00FFFF",
	"Aqua":          "00FFFF",
	"DarkTurquoise": "00CED1",
	"LightSeaGreen": "20B2AA",
	"Teal":          "008080",

	// Blues
	"PowderBlue":     "B0E0E6",
	"LightBlue":      "ADD8E6",
	"SkyBlue":        "87CEEB",
	"DeepSkyBlue":    "00BFFF",
	"DodgerBlue":     "1E90FF",
	"CornflowerBlue": "6495ED",
	"RoyalBlue":      "4169E1",
	"Blue":           "0000FF",
	"MediumBlue":     "0000CD",
	"DarkBlue":       "00008B",
	"Navy":           "000080",
	"MidnightBlue":   "191970",

	// Purples
	"Lavender":      "E6E6FA",
	"Thistle":       "D8BFD8",
	"Plum":          "DDA0DD",
	"Violet":        "EE82EE",
	"Orchid":        "DA70D6",
	"Magenta":       "FF00FF",
	"MediumOrchid":  "BA55D3",
	"BlueViolet":    "8A2BE2",
	"DarkViolet":    "9400D3",
	"Purple":        "800080",
	"Indigo":        "4B0082",
	"SlateBlue":     "6A5ACD",
	"DarkSlateBlue": "483D8B",
}

var sortedNames = func() []string {
	names := make([]string, 0, len(palette))
	for name := range palette {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}()

// ColorNames returns the palette names in sorted order.
func ColorNames() []string {
	return append([]string(nil), sortedNames...)
}

// LookupColor returns the RRGGBB hex stored for name.
func LookupColor(name string) (string, bool) {
	hex, ok := palette[name]
	return hex, ok
}

// HasColor reports whether name is a palette entry.
func HasColor(name string) bool {
	_, ok := palette[name]
	return ok
}
