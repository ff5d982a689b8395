package srt

import (
	"os"
	"path/filepath"
	"testing"

	"subburn/internal/transcribe"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "00:00:00,000"},
		{3661.5, "01:01:01,500"},
		{1.0005, "00:00:01,000"},
		{59.9999, "00:00:59,999"},
		{7325.042, "02:02:05,042"},
		{-3, "00:00:00,000"},
		{360000, "100:00:00,000"},
	}
	for _, tt := range tests {
		if got := FormatTimestamp(tt.in); got != tt.want {
			t.Fatalf("FormatTimestamp(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateEmpty(t *testing.T) {
	if got := Generate(nil); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestGenerateSingleSegment(t *testing.T) {
	got := Generate([]transcribe.Segment{{Start: 0, End: 1, Text: "hi"}})
	want := "1\n00:00:00,000 --> 00:00:01,000\nhi\n\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestGenerateKeepsOrderAndOverlaps(t *testing.T) {
	segments := []transcribe.Segment{
		{Start: 5, End: 6, Text: "  later  "},
		{Start: 1, End: 5.5, Text: "earlier"},
		{Start: 1, End: 5.5, Text: "earlier"},
	}
	want := "1\n00:00:05,000 --> 00:00:06,000\nlater\n\n" +
		"2\n00:00:01,000 --> 00:00:05,500\nearlier\n\n" +
		"3\n00:00:01,000 --> 00:00:05,500\nearlier\n\n"
	if got := Generate(segments); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subtitles.srt")
	if err := Write(path, []transcribe.Segment{{Start: 0.25, End: 2, Text: "你好"}}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "1\n00:00:00,250 --> 00:00:02,000\n你好\n\n" {
		t.Fatalf("unexpected content %q", data)
	}
}
