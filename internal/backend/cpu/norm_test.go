package cpu

import (
	"math"
	"testing"

	"github.com/born-ml/regnet/internal/tensor"
	"github.com/stretchr/testify/assert"
)

func TestInstanceNorm2D_ZeroMeanUnitVariance(t *testing.T) {
	for name, backend := range backends() {
		t.Run(name, func(t *testing.T) {
			x := seq(t, tensor.Shape{2, 3, 4, 4})
			out := backend.InstanceNorm2D(x, nil, nil, 1e-5)

			data := out.AsFloat32()
			for p := 0; p < 6; p++ {
				mean, variance := moments(data[p*16 : (p+1)*16])
				assert.InDelta(t, 0, mean, 1e-5, "plane %d", p)
				assert.InDelta(t, 1, variance, 1e-3, "plane %d", p)
			}
		})
	}
}

func TestInstanceNorm2D_KnownValuesAndAffine(t *testing.T) {
	backend := New()
	x := raw(t, tensor.Shape{1, 1, 2, 2}, 1, 2, 3, 4)

	// mean 2.5, var 1.25
	inv := float32(1 / math.Sqrt(1.25+1e-5))
	out := backend.InstanceNorm2D(x, raw(t, tensor.Shape{1}, 2), raw(t, tensor.Shape{1}, 1), 1e-5)
	assert.InDeltaSlice(t, []float32{
		-1.5*inv*2 + 1,
		-0.5*inv*2 + 1,
		0.5*inv*2 + 1,
		1.5*inv*2 + 1,
	}, out.AsFloat32(), 1e-5)
}

func TestInstanceNorm2D_ConstantPlane(t *testing.T) {
	backend := New()
	x := raw(t, tensor.Shape{1, 1, 1, 3}, 7, 7, 7)

	out := backend.InstanceNorm2D(x, nil, nil, 1e-5)
	assert.Equal(t, []float32{0, 0, 0}, out.AsFloat32())
}

func TestInstanceNorm2D_SingleElementPlane(t *testing.T) {
	backend := New()
	x := raw(t, tensor.Shape{1, 2, 1, 1}, 3, 4)

	assert.PanicsWithValue(t, "instance_norm2d: expected more than 1 spatial element, got input [1 2 1 1]", func() {
		backend.InstanceNorm2D(x, nil, nil, 1e-5)
	})
}

func TestBatchNorm2D_UsesSuppliedStats(t *testing.T) {
	backend := New()
	x := raw(t, tensor.Shape{1, 2, 1, 1}, 3, 3)

	out := backend.BatchNorm2D(x,
		raw(t, tensor.Shape{2}, 1, 3),
		raw(t, tensor.Shape{2}, 4, 1),
		raw(t, tensor.Shape{2}, 2, 1),
		raw(t, tensor.Shape{2}, 1, 0),
		1e-5)

	assert.InDeltaSlice(t, []float32{3, 0}, out.AsFloat32(), 1e-4)

	assert.Panics(t, func() { backend.BatchNorm2D(x, nil, nil, nil, nil, 1e-5) })
	assert.Panics(t, func() {
		backend.BatchNorm2D(x, raw(t, tensor.Shape{1}, 0), raw(t, tensor.Shape{2}, 1, 1), nil, nil, 1e-5)
	})
}

func TestChannelMoments(t *testing.T) {
	backend := New(WithWorkers(4))

	// channel 0: 1,2 (n=0) and 5,6 (n=1); channel 1: 3,4 and 7,8
	x := seq(t, tensor.Shape{2, 2, 1, 2})

	mean, variance := backend.ChannelMoments(x)
	assert.Equal(t, tensor.Shape{2}, mean.Shape())
	assert.InDeltaSlice(t, []float32{3.5, 5.5}, mean.AsFloat32(), 1e-6)
	assert.InDeltaSlice(t, []float32{4.25, 4.25}, variance.AsFloat32(), 1e-6)
}
