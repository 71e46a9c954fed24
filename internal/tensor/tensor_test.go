package tensor_test

import (
	"testing"

	"github.com/born-ml/regnet/internal/backend/cpu"
	"github.com/born-ml/regnet/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape_NumElementsAndStrides(t *testing.T) {
	s := tensor.Shape{2, 3, 4, 5}
	assert.Equal(t, 120, s.NumElements())
	assert.Equal(t, []int{60, 20, 5, 1}, s.ComputeStrides())
	assert.Equal(t, 1, tensor.Shape{}.NumElements())
}

func TestShape_Validate(t *testing.T) {
	require.NoError(t, tensor.Shape{1, 2}.Validate())
	require.Error(t, tensor.Shape{1, 0}.Validate())
	require.Error(t, tensor.Shape{-1}.Validate())
}

func TestShape_NCHWPanicsOnWrongRank(t *testing.T) {
	assert.PanicsWithValue(t, "conv: expected 4D input [N,C,H,W], got 3D", func() {
		tensor.Shape{1, 2, 3}.NCHW("conv")
	})
	n, c, h, w := tensor.Shape{1, 2, 3, 4}.NCHW("conv")
	assert.Equal(t, []int{1, 2, 3, 4}, []int{n, c, h, w})
}

func TestParsePadMode(t *testing.T) {
	for name, want := range map[string]tensor.PadMode{
		"constant":  tensor.PadConstant,
		"zeros":     tensor.PadConstant,
		"reflect":   tensor.PadReflect,
		"replicate": tensor.PadReplicate,
		"circular":  tensor.PadCircular,
	} {
		got, err := tensor.ParsePadMode(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := tensor.ParsePadMode("pano")
	assert.Error(t, err)
	assert.Equal(t, "replicate", tensor.PadReplicate.String())
}

func TestPadding_Helpers(t *testing.T) {
	assert.Equal(t, tensor.Padding{Left: 1, Right: 1, Top: 1, Bottom: 1}, tensor.Uniform(1))
	assert.Equal(t, tensor.Padding{Left: 1, Right: 2}, tensor.Horizontal(1, 2))
	assert.Equal(t, tensor.Padding{Top: 3, Bottom: 4}, tensor.Vertical(3, 4))
	assert.True(t, tensor.Padding{}.IsZero())
	assert.Equal(t, "(1, 2, 0, 0)", tensor.Horizontal(1, 2).String())
}

func TestFromSliceAndAccessors(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{1, 1, 2, 3}, backend)
	require.NoError(t, err)
	assert.Equal(t, float32(6), x.At(0, 0, 1, 2))

	x.Set(42, 0, 0, 0, 1)
	assert.Equal(t, []float32{1, 42, 3, 4, 5, 6}, x.Data())
	assert.Equal(t, "Tensor[float32][1 1 2 3] on CPU", x.String())

	_, err = tensor.FromSlice([]float32{1, 2}, tensor.Shape{3}, backend)
	assert.Error(t, err)

	assert.Panics(t, func() { x.At(0, 0, 2, 0) })
}

func TestClone_IsDeep(t *testing.T) {
	backend := cpu.New()
	x := tensor.Arange(tensor.Shape{2, 2}, backend)
	y := x.Clone()
	y.Data()[0] = 100
	assert.Equal(t, float32(0), x.Data()[0])
}

func TestRawTensor_BytesAndCopyFrom(t *testing.T) {
	r, err := tensor.NewRawFrom([]float32{1}, tensor.Shape{1}, tensor.CPU)
	require.NoError(t, err)
	// 1.0f little-endian
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, r.Bytes())

	dst, err := tensor.NewRaw(tensor.Shape{1}, tensor.CPU)
	require.NoError(t, err)
	require.NoError(t, dst.CopyFrom(r))
	assert.Equal(t, []float32{1}, dst.AsFloat32())

	other, err := tensor.NewRaw(tensor.Shape{2}, tensor.CPU)
	require.NoError(t, err)
	assert.Error(t, other.CopyFrom(r))
}

func TestCat(t *testing.T) {
	backend := cpu.New()
	a := tensor.Full(tensor.Shape{1, 1, 2, 2}, 1, backend)
	b := tensor.Full(tensor.Shape{1, 2, 2, 2}, 2, backend)

	c := tensor.Cat([]*tensor.Tensor[*cpu.CPUBackend]{a, b}, 1)
	assert.Equal(t, tensor.Shape{1, 3, 2, 2}, c.Shape())
	assert.Equal(t, float32(1), c.At(0, 0, 1, 1))
	assert.Equal(t, float32(2), c.At(0, 2, 0, 0))
}
