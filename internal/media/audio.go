package media

import (
	"errors"
	"fmt"
)

// Audio is the waveform payload passed between nodes.
type Audio struct {
	Waveform   Tensor
	SampleRate int
}

// Waveform2D returns the waveform without a batch axis, keeping the first
// batch entry of a [B, C, S] tensor. Other shapes are returned unchanged.
func (a Audio) Waveform2D() Tensor {
	w := a.Waveform
	if w.Dim() != 3 || w.Shape[0] == 0 {
		return w
	}
	per := w.Shape[1] * w.Shape[2]
	if len(w.Data) < per {
		return w
	}
	return Tensor{Shape: []int{w.Shape[1], w.Shape[2]}, Data: w.Data[:per]}
}

// Mono returns the waveform as a [1, S] tensor. A leading batch axis is
// dropped by keeping the first batch entry; multiple channels are averaged.
func (a Audio) Mono() (Tensor, error) {
	w := a.Waveform
	if err := w.Validate(); err != nil {
		return Tensor{}, fmt.Errorf("audio waveform: %w", err)
	}
	switch w.Dim() {
	case 3:
		if w.Shape[0] == 0 {
			return Tensor{}, errors.New("audio waveform: empty batch")
		}
		w = a.Waveform2D()
	case 2:
	default:
		return Tensor{}, fmt.Errorf("audio waveform: expected 2 or 3 dimensions, got shape %v", w.Shape)
	}

	channels, samples := w.Shape[0], w.Shape[1]
	if channels == 0 || samples == 0 {
		return Tensor{}, fmt.Errorf("audio waveform: no samples in shape %v", w.Shape)
	}
	if channels == 1 {
		return Tensor{Shape: []int{1, samples}, Data: append([]float32(nil), w.Data...)}, nil
	}

	mono := NewTensor(1, samples)
	for c := 0; c < channels; c++ {
		row := w.Data[c*samples : (c+1)*samples]
		for i, v := range row {
			mono.Data[i] += v
		}
	}
	scale := 1 / float32(channels)
	for i := range mono.Data {
		mono.Data[i] *= scale
	}
	return mono, nil
}
