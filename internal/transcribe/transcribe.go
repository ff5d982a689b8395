package transcribe

import (
	"context"
	"fmt"
	"strings"
)

// Segment is one timed unit of transcribed speech. Times are in seconds.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Model sizes accepted by the size selector.
const (
	SizeTiny   = "tiny"
	SizeBase   = "base"
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"

	DefaultSize = SizeSmall
)

// Engine names.
const (
	EngineWhisperCpp = "whispercpp"
	EngineWhisperX   = "whisperx"
)

var sizes = []string{SizeTiny, SizeBase, SizeSmall, SizeMedium, SizeLarge}

// Sizes returns the selectable model sizes, smallest first.
func Sizes() []string { return append([]string(nil), sizes...) }

// ValidateSize rejects sizes outside Sizes.
func ValidateSize(size string) error {
	for _, s := range sizes {
		if s == size {
			return nil
		}
	}
	return fmt.Errorf("model size %q not supported (choose %s)", size, strings.Join(sizes, ", "))
}

// Model transcribes audio files. workDir receives intermediate files and
// must already exist.
type Model interface {
	Name() string
	Transcribe(ctx context.Context, audioPath, workDir string) ([]Segment, error)
}

// Loader prepares a Model for a size selector.
type Loader interface {
	Load(ctx context.Context, size string) (Model, error)
}
