package cpu

import (
	"testing"

	"github.com/born-ml/regnet/internal/tensor"
	"github.com/stretchr/testify/assert"
)

func TestPad2D_Modes(t *testing.T) {
	// [[1,2,3],
	//  [4,5,6]]
	tests := []struct {
		mode tensor.PadMode
		want []float32
	}{
		{tensor.PadConstant, []float32{
			0, 0, 0, 0, 0,
			0, 1, 2, 3, 0,
			0, 4, 5, 6, 0,
			0, 0, 0, 0, 0,
		}},
		{tensor.PadReplicate, []float32{
			1, 1, 2, 3, 3,
			1, 1, 2, 3, 3,
			4, 4, 5, 6, 6,
			4, 4, 5, 6, 6,
		}},
		{tensor.PadReflect, []float32{
			5, 4, 5, 6, 5,
			2, 1, 2, 3, 2,
			5, 4, 5, 6, 5,
			2, 1, 2, 3, 2,
		}},
		{tensor.PadCircular, []float32{
			6, 4, 5, 6, 4,
			3, 1, 2, 3, 1,
			6, 4, 5, 6, 4,
			3, 1, 2, 3, 1,
		}},
	}

	for name, backend := range backends() {
		for _, tt := range tests {
			t.Run(name+"/"+tt.mode.String(), func(t *testing.T) {
				x := seq(t, tensor.Shape{1, 1, 2, 3})
				out := backend.Pad2D(x, tensor.Uniform(1), tt.mode, 0)

				assert.Equal(t, tensor.Shape{1, 1, 4, 5}, out.Shape())
				assert.Equal(t, tt.want, out.AsFloat32())
			})
		}
	}
}

func TestPad2D_ConstantValue(t *testing.T) {
	backend := New()
	x := seq(t, tensor.Shape{1, 1, 1, 1})

	out := backend.Pad2D(x, tensor.Horizontal(1, 1), tensor.PadConstant, -7)
	assert.Equal(t, []float32{-7, 1, -7}, out.AsFloat32())
}

// TestPad2D_PanoramicComposition pads width circularly, then height by
// edge replication: the two steps a panoramic conv applies.
func TestPad2D_PanoramicComposition(t *testing.T) {
	backend := New()
	x := seq(t, tensor.Shape{1, 1, 2, 3})

	wrapped := backend.Pad2D(x, tensor.Horizontal(1, 1), tensor.PadCircular, 0)
	out := backend.Pad2D(wrapped, tensor.Vertical(1, 1), tensor.PadReplicate, 0)

	assert.Equal(t, tensor.Shape{1, 1, 4, 5}, out.Shape())
	assert.Equal(t, []float32{
		3, 1, 2, 3, 1,
		3, 1, 2, 3, 1,
		6, 4, 5, 6, 4,
		6, 4, 5, 6, 4,
	}, out.AsFloat32())
}

func TestPad2D_Asymmetric(t *testing.T) {
	backend := New()
	x := seq(t, tensor.Shape{1, 1, 1, 3})

	out := backend.Pad2D(x, tensor.Horizontal(0, 1), tensor.PadCircular, 0)
	assert.Equal(t, []float32{1, 2, 3, 1}, out.AsFloat32())

	out = backend.Pad2D(x, tensor.Padding{Left: 2, Bottom: 1}, tensor.PadReplicate, 0)
	assert.Equal(t, tensor.Shape{1, 1, 2, 5}, out.Shape())
	assert.Equal(t, []float32{1, 1, 1, 2, 3, 1, 1, 1, 2, 3}, out.AsFloat32())
}

func TestPad2D_ZeroPaddingCopies(t *testing.T) {
	backend := New()
	x := seq(t, tensor.Shape{1, 1, 2, 2})

	out := backend.Pad2D(x, tensor.Padding{}, tensor.PadReflect, 0)
	assert.Equal(t, x.AsFloat32(), out.AsFloat32())
	assert.NotSame(t, x, out)
}

func TestPad2D_Limits(t *testing.T) {
	backend := New()
	x := seq(t, tensor.Shape{1, 1, 2, 2})

	assert.Panics(t, func() { backend.Pad2D(x, tensor.Uniform(2), tensor.PadReflect, 0) })
	assert.Panics(t, func() { backend.Pad2D(x, tensor.Uniform(3), tensor.PadCircular, 0) })
	assert.Panics(t, func() { backend.Pad2D(x, tensor.Padding{Left: -1}, tensor.PadConstant, 0) })
	assert.NotPanics(t, func() { backend.Pad2D(x, tensor.Uniform(2), tensor.PadCircular, 0) })
	assert.NotPanics(t, func() { backend.Pad2D(x, tensor.Uniform(5), tensor.PadReplicate, 0) })
}
