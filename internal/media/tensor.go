package media

import (
	"errors"
	"fmt"
)

// Tensor is a dense row-major float32 array.
type Tensor struct {
	Shape []int
	Data  []float32
}

// NewTensor allocates a zeroed tensor of the given shape.
func NewTensor(shape ...int) Tensor {
	return Tensor{Shape: append([]int(nil), shape...), Data: make([]float32, elementCount(shape))}
}

// Dim returns the tensor rank.
func (t Tensor) Dim() int { return len(t.Shape) }

// Validate checks that the shape is non-negative and matches the data length.
func (t Tensor) Validate() error {
	if len(t.Shape) == 0 {
		return errors.New("tensor: empty shape")
	}
	for i, d := range t.Shape {
		if d < 0 {
			return fmt.Errorf("tensor: negative dimension %d at axis %d", d, i)
		}
	}
	if want := elementCount(t.Shape); want != len(t.Data) {
		return fmt.Errorf("tensor: shape %v needs %d values, have %d", t.Shape, want, len(t.Data))
	}
	return nil
}

func elementCount(shape []int) int {
	if len(shape) == 0 {
		return 0
	}
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}
