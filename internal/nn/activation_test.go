package nn

import (
	"testing"

	"github.com/born-ml/regnet/internal/backend/cpu"
	"github.com/born-ml/regnet/internal/tensor"
	"github.com/stretchr/testify/assert"
)

func TestReLU_InPlace(t *testing.T) {
	backend := cpu.New()
	x := fromSlice(t, backend, tensor.Shape{4}, -1, 0, 1, -3)

	out := NewReLU[Backend]().Forward(x)

	assert.Same(t, x, out)
	assert.Equal(t, []float32{0, 0, 1, 0}, x.Data())
}

func TestLeakyReLU_InPlace(t *testing.T) {
	backend := cpu.New()
	x := fromSlice(t, backend, tensor.Shape{3}, -1, 0, 2)

	act := NewLeakyReLU[Backend](DefaultLeakySlope)
	out := act.Forward(x)

	assert.Same(t, x, out)
	assert.InDeltaSlice(t, []float32{-0.2, 0, 2}, x.Data(), 1e-6)
	assert.Equal(t, "LeakyReLU(negative_slope=0.2, inplace=true)", act.String())
}
