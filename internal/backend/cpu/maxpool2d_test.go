package cpu

import (
	"testing"

	"github.com/born-ml/regnet/internal/tensor"
	"github.com/stretchr/testify/assert"
)

// TestMaxPool2D_BasicForward tests basic max pooling correctness.
func TestMaxPool2D_BasicForward(t *testing.T) {
	for name, backend := range backends() {
		t.Run(name, func(t *testing.T) {
			// [[1,2,3,4],      -> [[6,8],
			//  [5,6,7,8],         [14,16]]
			//  [9,10,11,12],
			//  [13,14,15,16]]
			input := seq(t, tensor.Shape{1, 1, 4, 4})

			output := backend.MaxPool2D(input, 2, 2)

			assert.Equal(t, tensor.Shape{1, 1, 2, 2}, output.Shape())
			assert.Equal(t, []float32{6, 8, 14, 16}, output.AsFloat32())
		})
	}
}

// TestMaxPool2D_FloorMode drops the trailing row and column of odd inputs.
func TestMaxPool2D_FloorMode(t *testing.T) {
	backend := New()

	input := seq(t, tensor.Shape{1, 1, 5, 5})
	output := backend.MaxPool2D(input, 2, 2)

	assert.Equal(t, tensor.Shape{1, 1, 2, 2}, output.Shape())
	assert.Equal(t, []float32{7, 9, 17, 19}, output.AsFloat32())
}

// TestMaxPool2D_MultiChannel tests multi-channel max pooling.
func TestMaxPool2D_MultiChannel(t *testing.T) {
	backend := New(WithWorkers(4))

	input := seq(t, tensor.Shape{2, 3, 2, 2})
	output := backend.MaxPool2D(input, 2, 2)

	assert.Equal(t, tensor.Shape{2, 3, 1, 1}, output.Shape())
	assert.Equal(t, []float32{4, 8, 12, 16, 20, 24}, output.AsFloat32())
}

func TestMaxPool2D_NegativeValues(t *testing.T) {
	backend := New()

	input := raw(t, tensor.Shape{1, 1, 2, 2}, -4, -3, -2, -1)
	output := backend.MaxPool2D(input, 2, 2)
	assert.Equal(t, []float32{-1}, output.AsFloat32())
}

func TestMaxPool2D_TooSmall(t *testing.T) {
	backend := New()

	tests := []struct {
		name  string
		shape tensor.Shape
		want  string
	}{
		{"short", tensor.Shape{1, 2, 1, 4}, "maxpool2d: input 1x4 is smaller than kernel 2"},
		{"narrow", tensor.Shape{2, 1, 4, 1}, "maxpool2d: input 4x1 is smaller than kernel 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PanicsWithValue(t, tt.want, func() {
				backend.MaxPool2D(seq(t, tt.shape), 2, 2)
			})
		})
	}
}
