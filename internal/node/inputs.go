package node

import (
	"errors"
	"fmt"
	"math"

	"subburn/internal/media"
	"subburn/internal/style"
	"subburn/internal/transcribe"
)

// Frame rate bounds and default.
const (
	MinFPS     = 0.1
	MaxFPS     = 120.0
	DefaultFPS = 25.0
)

// Inputs are the values of one node invocation.
type Inputs struct {
	// Frames is an [N, H, W, 3] batch with values in [0, 1].
	Frames    media.Tensor
	Audio     media.Audio
	FPS       float64
	ModelSize string
	Style     style.Config
	// CaptionOut, when set, receives a copy of the generated SRT file.
	CaptionOut string
}

// Outputs mirror the node's (frames, audio, fps) return tuple. Audio and
// FPS are the inputs passed through unchanged.
type Outputs struct {
	Frames media.Tensor
	Audio  media.Audio
	FPS    float64
}

// DefaultInputs returns the schema defaults with no media attached.
func DefaultInputs() Inputs {
	return Inputs{FPS: DefaultFPS, ModelSize: transcribe.DefaultSize, Style: style.Default()}
}

func (in Inputs) withDefaults() Inputs {
	if in.ModelSize == "" {
		in.ModelSize = transcribe.DefaultSize
	}
	if in.Style == (style.Config{}) {
		in.Style = style.Default()
	}
	return in
}

// Validate checks every input range before any file is written.
func (in Inputs) Validate() error {
	if math.IsNaN(in.FPS) || in.FPS < MinFPS || in.FPS > MaxFPS {
		return fmt.Errorf("fps %v out of range [%v, %v]", in.FPS, MinFPS, MaxFPS)
	}
	if err := transcribe.ValidateSize(in.ModelSize); err != nil {
		return err
	}
	if err := in.Style.Validate(); err != nil {
		return err
	}
	if _, _, _, err := media.FrameGeometry(in.Frames); err != nil {
		return err
	}
	if in.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio sample rate %d must be positive", in.Audio.SampleRate)
	}
	if dim := in.Audio.Waveform.Dim(); dim != 2 && dim != 3 {
		return fmt.Errorf("audio waveform must be [C, S] or [B, C, S], got %v", in.Audio.Waveform.Shape)
	}
	if in.Audio.Waveform.Shape[in.Audio.Waveform.Dim()-1] == 0 {
		return errors.New("audio waveform has no samples")
	}
	return nil
}
