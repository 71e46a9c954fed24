package cpu

import (
	"testing"

	"github.com/born-ml/regnet/internal/tensor"
	"github.com/stretchr/testify/require"
)

// raw builds a RawTensor from data, failing the test on a shape mismatch.
func raw(t *testing.T, shape tensor.Shape, data ...float32) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.NewRawFrom(append([]float32(nil), data...), shape, tensor.CPU)
	require.NoError(t, err)
	return r
}

// seq builds a RawTensor holding 1, 2, 3, ... in row-major order.
func seq(t *testing.T, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	data := make([]float32, shape.NumElements())
	for i := range data {
		data[i] = float32(i + 1)
	}
	return raw(t, shape, data...)
}

// backends returns a sequential and a parallel backend so every kernel is
// exercised on both code paths.
func backends() map[string]*CPUBackend {
	return map[string]*CPUBackend{
		"sequential": New(WithWorkers(1)),
		"parallel":   New(WithWorkers(4)),
	}
}
