// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand/v2"

	"github.com/born-ml/regnet/internal/nn"
	"github.com/born-ml/regnet/tensor"
)

// Parameter represents a learned parameter or a buffer of a module.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new learned parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// InitOption configures weight initialization.
type InitOption = nn.InitOption

// WithRand draws initial weights from rng, making construction reproducible.
func WithRand(rng *rand.Rand) InitOption {
	return nn.WithRand(rng)
}

// Layers

// Conv2D represents a 2D convolutional layer.
type Conv2D[B tensor.Backend] = nn.Conv2D[B]

// NewConv2D creates a new 2D convolutional layer with PyTorch's default
// initialization.
//
// Example:
//
//	backend := cpu.New()
//	conv := nn.NewConv2D(3, 32, 3, 3, 1, 0, false, backend)  // in=3, out=32, kernel=3x3, stride=1, padding=0, no bias
func NewConv2D[B tensor.Backend](
	inChannels, outChannels int,
	kernelH, kernelW int,
	stride, padding int,
	useBias bool,
	backend B,
	opts ...InitOption,
) *Conv2D[B] {
	return nn.NewConv2D(inChannels, outChannels, kernelH, kernelW, stride, padding, useBias, backend, opts...)
}

// MaxPool2D represents a 2D max pooling layer.
type MaxPool2D[B tensor.Backend] = nn.MaxPool2D[B]

// NewMaxPool2D creates a new 2D max pooling layer.
//
// Example:
//
//	backend := cpu.New()
//	pool := nn.NewMaxPool2D(2, 2, backend)  // kernel=2, stride=2
func NewMaxPool2D[B tensor.Backend](kernelSize, stride int, backend B) *MaxPool2D[B] {
	return nn.NewMaxPool2D(kernelSize, stride, backend)
}

// Upsample represents bilinear upsampling by an integer factor.
type Upsample[B tensor.Backend] = nn.Upsample[B]

// NewUpsample creates a bilinear upsampling layer.
func NewUpsample[B tensor.Backend](scale int, alignCorners bool) *Upsample[B] {
	return nn.NewUpsample[B](scale, alignCorners)
}

// Padding

// PadPolicy decides how a spatial border is synthesized.
type PadPolicy = nn.PadPolicy

// Panoramic returns the policy that wraps width and replicates height.
func Panoramic() PadPolicy {
	return nn.Panoramic()
}

// UniformPolicy returns a policy applying mode to every side.
func UniformPolicy(mode tensor.PadMode) PadPolicy {
	return nn.UniformPolicy(mode)
}

// ParsePadPolicy accepts "pano" or a padding mode name.
func ParsePadPolicy(s string) (PadPolicy, error) {
	return nn.ParsePadPolicy(s)
}

// Pad2D represents an explicit padding layer.
type Pad2D[B tensor.Backend] = nn.Pad2D[B]

// NewPad2D creates a padding layer.
func NewPad2D[B tensor.Backend](pad tensor.Padding, policy PadPolicy) *Pad2D[B] {
	return nn.NewPad2D[B](pad, policy)
}

// Normalization

// DefaultNormEps is the variance epsilon of both norm layers.
const DefaultNormEps = nn.DefaultNormEps

// InstanceNorm2D normalizes every (sample, channel) plane.
type InstanceNorm2D[B tensor.Backend] = nn.InstanceNorm2D[B]

// NewInstanceNorm2D creates an instance norm layer.
func NewInstanceNorm2D[B tensor.Backend](numFeatures int, eps float32, affine bool, backend B) *InstanceNorm2D[B] {
	return nn.NewInstanceNorm2D(numFeatures, eps, affine, backend)
}

// BatchNorm2D normalizes every channel over batch and space.
type BatchNorm2D[B tensor.Backend] = nn.BatchNorm2D[B]

// NewBatchNorm2D creates a batch norm layer in evaluation mode.
func NewBatchNorm2D[B tensor.Backend](numFeatures int, eps float32, backend B) *BatchNorm2D[B] {
	return nn.NewBatchNorm2D(numFeatures, eps, backend)
}

// Activations

// ReLU represents the Rectified Linear Unit activation function.
type ReLU[B tensor.Backend] = nn.ReLU[B]

// NewReLU creates a new in-place ReLU activation layer.
//
// Example:
//
//	relu := nn.NewReLU[*cpu.Backend]()
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return nn.NewReLU[B]()
}

// LeakyReLU represents the leaky rectifier.
type LeakyReLU[B tensor.Backend] = nn.LeakyReLU[B]

// NewLeakyReLU creates a new in-place LeakyReLU activation layer.
func NewLeakyReLU[B tensor.Backend](slope float32) *LeakyReLU[B] {
	return nn.NewLeakyReLU[B](slope)
}

// Containers

// Sequential represents a sequential container of modules.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a new sequential container.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential(modules...)
}
