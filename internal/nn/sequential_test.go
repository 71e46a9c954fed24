package nn

import (
	"testing"

	"github.com/born-ml/regnet/internal/backend/cpu"
	"github.com/born-ml/regnet/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequential_ForwardAndParameters(t *testing.T) {
	backend := cpu.New()

	seq := NewSequential[Backend](
		NewPad2D[Backend](tensor.Uniform(1), Panoramic()),
		NewConv2D(2, 4, 3, 3, 1, 0, false, backend),
		NewBatchNorm2D(4, DefaultNormEps, backend),
		NewReLU[Backend](),
	)

	out := seq.Forward(tensor.Randn(tensor.Shape{1, 2, 5, 7}, newRand(2), backend))
	assert.Equal(t, tensor.Shape{1, 4, 5, 7}, out.Shape())
	for _, v := range out.Data() {
		assert.GreaterOrEqual(t, v, float32(0))
	}

	assert.Equal(t, 4, seq.Len())
	assert.Len(t, seq.Parameters(), 3) // conv weight, bn weight, bn bias
	assert.Equal(t, 4*2*9+4+4, CountElements(seq.Parameters()))
}

func TestSequential_StateDictNaming(t *testing.T) {
	backend := cpu.New()

	seq := NewSequential[Backend](
		NewMaxPool2D(2, 2, backend),
		NewSequential[Backend](
			NewConv2D(1, 1, 1, 1, 1, 0, true, backend),
		),
	)

	assert.Equal(t, []string{"1.0.bias", "1.0.weight"}, keys(seq.StateDict()))
}

func TestSequential_LoadStateDict(t *testing.T) {
	backend := cpu.New()

	build := func(seed uint64) *Sequential[Backend] {
		return NewSequential[Backend](
			NewConv2D(1, 2, 1, 1, 1, 0, true, backend, WithRand(newRand(seed))),
			NewReLU[Backend](),
			NewConv2D(2, 1, 1, 1, 1, 0, false, backend, WithRand(newRand(seed+1))),
		)
	}

	src, dst := build(1), build(10)
	require.NoError(t, dst.LoadStateDict(src.StateDict()))

	x := tensor.Randn(tensor.Shape{1, 1, 2, 2}, newRand(3), backend)
	assert.Equal(t, src.Forward(x.Clone()).Data(), dst.Forward(x.Clone()).Data())

	err := dst.LoadStateDict(map[string]*tensor.RawTensor{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingTensor)
	assert.Contains(t, err.Error(), "module 0")
}

func TestSequential_SetTrainingPropagates(t *testing.T) {
	backend := cpu.New()
	bn := NewBatchNorm2D(1, DefaultNormEps, backend)
	seq := NewSequential[Backend](NewSequential[Backend](bn))

	SetTraining(seq, true)
	assert.True(t, bn.Training())
	SetTraining(seq, false)
	assert.False(t, bn.Training())
}

func TestSubStateAndMergeState(t *testing.T) {
	backend := cpu.New()
	w := tensor.Zeros(tensor.Shape{1}, backend).Raw()

	dict := map[string]*tensor.RawTensor{}
	MergeState(dict, "inc.conv", map[string]*tensor.RawTensor{"0.conv.weight": w})
	assert.Equal(t, []string{"inc.conv.0.conv.weight"}, keys(dict))

	sub := SubState(dict, "inc")
	assert.Equal(t, []string{"conv.0.conv.weight"}, keys(sub))
	assert.Same(t, w, sub["conv.0.conv.weight"])

	assert.Empty(t, SubState(dict, "in"))
}
