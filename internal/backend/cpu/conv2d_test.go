package cpu

import (
	"testing"

	"github.com/born-ml/regnet/internal/tensor"
	"github.com/stretchr/testify/assert"
)

func TestConv2D_KnownValues(t *testing.T) {
	for name, backend := range backends() {
		t.Run(name, func(t *testing.T) {
			// [[1,2,3],
			//  [4,5,6],
			//  [7,8,9]] * ones(2x2)
			input := seq(t, tensor.Shape{1, 1, 3, 3})
			kernel := raw(t, tensor.Shape{1, 1, 2, 2}, 1, 1, 1, 1)

			out := backend.Conv2D(input, kernel, nil, 1, 0)

			assert.Equal(t, tensor.Shape{1, 1, 2, 2}, out.Shape())
			assert.Equal(t, []float32{12, 16, 24, 28}, out.AsFloat32())
		})
	}
}

func TestConv2D_BiasAndChannels(t *testing.T) {
	backend := New(WithWorkers(4))

	input := seq(t, tensor.Shape{2, 1, 2, 2}) // two batch items
	kernel := raw(t, tensor.Shape{2, 1, 1, 1}, 1, -1)
	bias := raw(t, tensor.Shape{2}, 0.5, 10)

	out := backend.Conv2D(input, kernel, bias, 1, 0)

	assert.Equal(t, tensor.Shape{2, 2, 2, 2}, out.Shape())
	assert.Equal(t, []float32{
		1.5, 2.5, 3.5, 4.5, // n=0, c=0
		9, 8, 7, 6, // n=0, c=1
		5.5, 6.5, 7.5, 8.5, // n=1, c=0
		5, 4, 3, 2, // n=1, c=1
	}, out.AsFloat32())
}

func TestConv2D_MultiInputChannels(t *testing.T) {
	backend := New()

	// Two input channels of ones and twos; kernel sums both.
	input := raw(t, tensor.Shape{1, 2, 1, 2}, 1, 1, 2, 2)
	kernel := raw(t, tensor.Shape{1, 2, 1, 1}, 1, 1)

	out := backend.Conv2D(input, kernel, nil, 1, 0)
	assert.Equal(t, []float32{3, 3}, out.AsFloat32())
}

func TestConv2D_ZeroPaddingAndStride(t *testing.T) {
	backend := New()

	input := seq(t, tensor.Shape{1, 1, 3, 3})
	kernel := raw(t, tensor.Shape{1, 1, 3, 3}, 1, 1, 1, 1, 1, 1, 1, 1, 1)

	out := backend.Conv2D(input, kernel, nil, 1, 1)
	assert.Equal(t, tensor.Shape{1, 1, 3, 3}, out.Shape())
	// Top-left sees 1,2,4,5; centre sees everything.
	assert.Equal(t, float32(12), out.AsFloat32()[0])
	assert.Equal(t, float32(45), out.AsFloat32()[4])

	strided := backend.Conv2D(input, kernel, nil, 2, 1)
	assert.Equal(t, tensor.Shape{1, 1, 2, 2}, strided.Shape())
	assert.Equal(t, []float32{12, 16, 24, 28}, strided.AsFloat32())
}

func TestConv2D_Panics(t *testing.T) {
	backend := New()
	input := seq(t, tensor.Shape{1, 2, 3, 3})

	assert.PanicsWithValue(t, "conv2d: input channels 2 != kernel channels 1", func() {
		backend.Conv2D(input, seq(t, tensor.Shape{1, 1, 3, 3}), nil, 1, 0)
	})
	assert.Panics(t, func() {
		backend.Conv2D(seq(t, tensor.Shape{2, 3, 3}), seq(t, tensor.Shape{1, 2, 3, 3}), nil, 1, 0)
	})
	assert.Panics(t, func() {
		backend.Conv2D(input, seq(t, tensor.Shape{1, 2, 5, 5}), nil, 1, 0)
	})
	assert.Panics(t, func() {
		backend.Conv2D(input, seq(t, tensor.Shape{1, 2, 1, 1}), seq(t, tensor.Shape{3}), 1, 0)
	})
}
