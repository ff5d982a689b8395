package srt

import (
	"fmt"
	"math"
	"os"
	"strings"

	"subburn/internal/transcribe"
)

// FormatTimestamp converts a seconds offset into HH:MM:SS,mmm. The value is
// rounded to whole microseconds before milliseconds are truncated, so 1.0005
// renders as 00:00:01,000. Negative offsets render as zero.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	micros := int64(math.Round(seconds * 1e6))
	total := micros / 1_000_000
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	millis := (micros % 1_000_000) / 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// Generate renders segments as SRT text. An empty slice yields "".
func Generate(segments []transcribe.Segment) string {
	var b strings.Builder
	for i, seg := range segments {
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", FormatTimestamp(seg.Start), FormatTimestamp(seg.End))
		b.WriteString(strings.TrimSpace(seg.Text))
		b.WriteString("\n\n")
	}
	return b.String()
}

// Write renders segments into a UTF-8 caption file at path.
func Write(path string, segments []transcribe.Segment) error {
	if err := os.WriteFile(path, []byte(Generate(segments)), 0o644); err != nil {
		return fmt.Errorf("write srt: %w", err)
	}
	return nil
}
