// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/born-ml/regnet/backend/cpu"
	"github.com/born-ml/regnet/nn"
	"github.com/born-ml/regnet/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Backend = *cpu.Backend

// TestModuleInterface verifies that concrete types implement Module interface.
func TestModuleInterface(t *testing.T) {
	backend := cpu.New()

	tests := []struct {
		name   string
		module nn.Module[Backend]
	}{
		{
			name:   "Conv2D",
			module: nn.NewConv2D(3, 4, 3, 3, 1, 1, true, backend),
		},
		{
			name: "Sequential",
			module: nn.NewSequential[Backend](
				nn.NewPad2D[Backend](tensor.Padding{Left: 1, Right: 1, Top: 1, Bottom: 1}, nn.Panoramic()),
				nn.NewConv2D(3, 4, 3, 3, 1, 0, false, backend),
				nn.NewBatchNorm2D(4, nn.DefaultNormEps, backend),
				nn.NewLeakyReLU[Backend](0.2),
				nn.NewMaxPool2D(2, 2, backend),
				nn.NewUpsample[Backend](2, true),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tensor.Randn(tensor.Shape{2, 3, 8, 8}, nil, backend)
			out := tt.module.Forward(input)
			assert.Equal(t, tensor.Shape{2, 4, 8, 8}, out.Shape())

			assert.NotNil(t, tt.module.Parameters())
			assert.NotEmpty(t, tt.module.StateDict())
		})
	}
}

func TestSaveLoad(t *testing.T) {
	backend := cpu.New()
	path := filepath.Join(t.TempDir(), "conv.safetensors")

	src := nn.NewConv2D(2, 3, 3, 3, 1, 1, true, backend, nn.WithRand(rand.New(rand.NewPCG(1, 1))))
	require.NoError(t, nn.Save[Backend](src, path, map[string]string{"note": "test"}))

	dst := nn.NewConv2D(2, 3, 3, 3, 1, 1, true, backend, nn.WithRand(rand.New(rand.NewPCG(2, 2))))
	metadata, err := nn.Load[Backend](path, backend, dst)
	require.NoError(t, err)

	assert.Equal(t, "test", metadata["note"])
	assert.Equal(t, src.Weight().Tensor().Data(), dst.Weight().Tensor().Data())
	assert.Equal(t, src.Bias().Tensor().Data(), dst.Bias().Tensor().Data())
}
