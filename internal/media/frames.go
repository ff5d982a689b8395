package media

import (
	"fmt"
	"math"
)

// FrameChannels is the channel count of a frame batch (RGB).
const FrameChannels = 3

// FrameGeometry returns count, height, and width of a [N, H, W, 3] batch.
func FrameGeometry(frames Tensor) (n, height, width int, err error) {
	if err := frames.Validate(); err != nil {
		return 0, 0, 0, fmt.Errorf("frames: %w", err)
	}
	if frames.Dim() != 4 || frames.Shape[3] != FrameChannels {
		return 0, 0, 0, fmt.Errorf("frames: expected shape [N, H, W, 3], got %v", frames.Shape)
	}
	n, height, width = frames.Shape[0], frames.Shape[1], frames.Shape[2]
	if n == 0 || height == 0 || width == 0 {
		return 0, 0, 0, fmt.Errorf("frames: empty batch %v", frames.Shape)
	}
	return n, height, width, nil
}

// ToRGB24 scales [0, 1] values to bytes. Values are clamped, then truncated.
func ToRGB24(frames Tensor) []byte {
	out := make([]byte, len(frames.Data))
	for i, v := range frames.Data {
		scaled := v * 255
		switch {
		case scaled <= 0 || math.IsNaN(float64(scaled)):
			out[i] = 0
		case scaled >= 255:
			out[i] = 255
		default:
			out[i] = byte(scaled)
		}
	}
	return out
}

// FromRGB24 builds a [N, H, W, 3] batch normalised to [0, 1].
func FromRGB24(data []byte, n, height, width int) (Tensor, error) {
	frameSize := height * width * FrameChannels
	if frameSize == 0 || len(data) != n*frameSize {
		return Tensor{}, fmt.Errorf("frames: %d bytes do not hold %d frames of %dx%d", len(data), n, width, height)
	}
	t := NewTensor(n, height, width, FrameChannels)
	for i, b := range data {
		t.Data[i] = float32(b) / 255
	}
	return t, nil
}
