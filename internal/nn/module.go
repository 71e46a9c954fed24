// Package nn implements neural network modules for image-to-image networks.
//
// This package provides building blocks for constructing convolutional networks:
//   - Module interface: Base interface for all NN components
//   - Parameter: Learned weights and running statistics
//   - Conv2D, MaxPool2D, Upsample: Spatial layers
//   - Pad2D and PadPolicy: Explicit padding, including panoramic wrap
//   - InstanceNorm2D, BatchNorm2D: Normalization
//   - ReLU, LeakyReLU: In-place activations
//   - Sequential: Container for stacking layers
//
// Design inspired by PyTorch's nn.Module but adapted for Go generics.
package nn

import (
	"github.com/born-ml/regnet/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Every NN module must implement:
//   - Forward: Compute output from input
//   - Parameters: Return all learned parameters
//   - StateDict: Export parameters and buffers for serialization
//   - LoadStateDict: Import parameters and buffers
//
// Modules can be composed to build complex architectures:
//
//	block := nn.NewSequential[Backend](
//	    nn.NewPad2D[Backend](tensor.Uniform(1), nn.Panoramic()),
//	    nn.NewConv2D(64, 64, 3, 3, 1, 0, false, backend),
//	    nn.NewInstanceNorm2D(64, 1e-5, false, backend),
//	    nn.NewReLU[Backend](),
//	)
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	//
	// Image modules expect [N, C, H, W] input.
	Forward(input *tensor.Tensor[B]) *tensor.Tensor[B]

	// Parameters returns all learned parameters of this module.
	//
	// Returns an empty slice for modules without parameters
	// (e.g., activation functions).
	Parameters() []*Parameter[B]

	// StateDict returns a map of parameter names to raw tensors.
	//
	// The map holds both learned parameters and buffers (running
	// statistics). The returned tensors alias the module's storage.
	StateDict() map[string]*tensor.RawTensor

	// LoadStateDict copies tensors from a state dictionary into the module.
	//
	// Returns an error if a required entry is missing or has the wrong shape.
	LoadStateDict(stateDict map[string]*tensor.RawTensor) error
}

// Trainable is implemented by modules whose forward pass differs between
// training and evaluation (BatchNorm2D).
type Trainable interface {
	SetTraining(training bool)
}

// SetTraining switches m and, for containers, its children into training or
// evaluation mode. Modules that do not care are left alone.
func SetTraining(m any, training bool) {
	if t, ok := m.(Trainable); ok {
		t.SetTraining(training)
	}
}
