package cpu

import (
	"testing"

	"github.com/born-ml/regnet/internal/tensor"
	"github.com/stretchr/testify/assert"
)

func TestCat_ChannelDimKeepsOrder(t *testing.T) {
	backend := New()

	a := raw(t, tensor.Shape{2, 1, 1, 2}, 1, 2, 3, 4)
	b := raw(t, tensor.Shape{2, 2, 1, 2}, 10, 11, 12, 13, 14, 15, 16, 17)

	out := backend.Cat([]*tensor.RawTensor{a, b}, 1)

	assert.Equal(t, tensor.Shape{2, 3, 1, 2}, out.Shape())
	assert.Equal(t, []float32{
		1, 2, 10, 11, 12, 13, // n=0
		3, 4, 14, 15, 16, 17, // n=1
	}, out.AsFloat32())
}

func TestCat_FirstAndLastDim(t *testing.T) {
	backend := New()

	a := raw(t, tensor.Shape{1, 2}, 1, 2)
	b := raw(t, tensor.Shape{1, 2}, 3, 4)

	assert.Equal(t, []float32{1, 2, 3, 4}, backend.Cat([]*tensor.RawTensor{a, b}, 0).AsFloat32())

	last := backend.Cat([]*tensor.RawTensor{a, b}, -1)
	assert.Equal(t, tensor.Shape{1, 4}, last.Shape())
	assert.Equal(t, []float32{1, 2, 3, 4}, last.AsFloat32())
}

func TestCat_Mismatch(t *testing.T) {
	backend := New()

	a := seq(t, tensor.Shape{1, 1, 2, 2})
	b := seq(t, tensor.Shape{1, 1, 3, 2})

	assert.Panics(t, func() { backend.Cat([]*tensor.RawTensor{a, b}, 1) })
	assert.Panics(t, func() { backend.Cat(nil, 0) })
	assert.Panics(t, func() { backend.Cat([]*tensor.RawTensor{a}, 4) })
}
