package nn

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/born-ml/regnet/internal/backend/cpu"
	"github.com/born-ml/regnet/internal/tensor"
	"github.com/stretchr/testify/require"
)

type Backend = *cpu.CPUBackend

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func fromSlice(t *testing.T, backend Backend, shape tensor.Shape, data ...float32) *tensor.Tensor[Backend] {
	t.Helper()
	x, err := tensor.FromSlice(data, shape, backend)
	require.NoError(t, err)
	return x
}

func keys(dict map[string]*tensor.RawTensor) []string {
	out := make([]string, 0, len(dict))
	for k := range dict {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
