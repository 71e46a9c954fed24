// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/regnet/internal/nn"
	"github.com/born-ml/regnet/internal/serialization"
	"github.com/born-ml/regnet/tensor"
)

// Module is the base interface for all neural network components.
//
// Every NN module must implement:
//   - Forward: Compute output from input
//   - Parameters: Return all learned parameters
//   - StateDict: Export parameters and buffers for serialization
//   - LoadStateDict: Import parameters and buffers from serialization
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] = nn.Module[B]

// Trainable is implemented by modules that behave differently in training
// and evaluation mode.
type Trainable = nn.Trainable

// SetTraining switches m into training (true) or evaluation mode if it
// supports it.
func SetTraining(m any, training bool) {
	nn.SetTraining(m, training)
}

// Save writes a module's state dictionary to a SafeTensors file.
//
// Parameters:
//   - module: The module to save
//   - path: File path to write to
//   - metadata: Optional metadata (can be nil)
//
// Example:
//
//	backend := cpu.New()
//	conv := nn.NewConv2D(3, 8, 3, 3, 1, 1, true, backend)
//	err := nn.Save[*cpu.Backend](conv, "conv.safetensors", nil)
func Save[B tensor.Backend](module Module[B], path string, metadata map[string]string) error {
	return serialization.WriteSafeTensors(path, module.StateDict(), metadata)
}

// Load reads a SafeTensors file into module and returns the file metadata.
//
// F32, F64, F16 and BF16 tensors are accepted; all are converted to
// float32.
//
// Example:
//
//	backend := cpu.New()
//	conv := nn.NewConv2D(3, 8, 3, 3, 1, 1, true, backend)
//	metadata, err := nn.Load("conv.safetensors", backend, conv)
func Load[B tensor.Backend](path string, backend B, module Module[B]) (map[string]string, error) {
	stateDict, metadata, err := serialization.ReadSafeTensors(path, backend.Device())
	if err != nil {
		return nil, err
	}

	if err := module.LoadStateDict(stateDict); err != nil {
		return nil, err
	}

	return metadata, nil
}
