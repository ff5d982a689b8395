package style

import (
	"strings"
	"testing"
)

func TestRGBToBGR(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"FF0000", "0000FF"},
		{"123456", "563412"},
		{"#1E90FF", "FF901E"},
		{"ABC", "FFFFFF"},
		{"", "FFFFFF"},
		{"1234567", "FFFFFF"},
	}
	for _, tt := range tests {
		if got := RGBToBGR(tt.in); got != tt.want {
			t.Fatalf("RGBToBGR(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRGBToBGRRoundTripsEveryPaletteColor(t *testing.T) {
	for _, name := range ColorNames() {
		rgb, _ := LookupColor(name)
		bgr := RGBToBGR(rgb)
		back := bgr[4:6] + bgr[2:4] + bgr[0:2]
		if back != rgb {
			t.Fatalf("%s: reversing %q gave %q, want %q", name, bgr, back, rgb)
		}
	}
}

func TestEncodeColor(t *testing.T) {
	tests := []struct {
		name  string
		alpha int
		want  string
	}{
		{"Yellow", 0, "&H0000FFFF"},
		{"Black", 128, "&H80000000"},
		{"DodgerBlue", 5, "&H05FF901E"},
		{"White", 255, "&HFFFFFFFF"},
		{"Red", 300, "&HFF0000FF"},
		{"Red", -4, "&H000000FF"},
		{"NotAColor", 16, "&H10FFFFFF"},
	}
	for _, tt := range tests {
		if got := EncodeColor(tt.name, tt.alpha); got != tt.want {
			t.Fatalf("EncodeColor(%q, %d) = %q, want %q", tt.name, tt.alpha, got, tt.want)
		}
	}
}

func TestEncodeColorAlphaIsTwoUppercaseDigits(t *testing.T) {
	for alpha := 0; alpha <= 255; alpha++ {
		token := EncodeColor("Teal", alpha)
		if len(token) != 10 || !strings.HasPrefix(token, "&H") {
			t.Fatalf("alpha %d: unexpected token %q", alpha, token)
		}
		segment := token[2:4]
		if segment != strings.ToUpper(segment) {
			t.Fatalf("alpha %d: segment %q not uppercase", alpha, segment)
		}
	}
}

func TestPaletteEntriesAreSixHexDigits(t *testing.T) {
	for _, name := range ColorNames() {
		rgb, _ := LookupColor(name)
		if len(rgb) != 6 || strings.Trim(rgb, "0123456789ABCDEF") != "" {
			t.Fatalf("%s has malformed hex %q", name, rgb)
		}
	}
}

func TestColorNamesSorted(t *testing.T) {
	names := ColorNames()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("names not sorted at %d: %q > %q", i, names[i-1], names[i])
		}
	}
	names[0] = "mutated"
	if ColorNames()[0] == "mutated" {
		t.Fatal("ColorNames exposed internal slice")
	}
}
