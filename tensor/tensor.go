// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand/v2"

	"github.com/born-ml/regnet/internal/tensor"
)

// Type aliases for public API

// Device represents the device where tensor data resides.
type Device = tensor.Device

// CPU is the host device.
const CPU Device = tensor.CPU

// Shape represents the dimensions of a tensor.
// Example: Shape{1, 3, 64, 128} is one 3-channel 64x128 image.
type Shape = tensor.Shape

// Padding is the number of border pixels added on each side of an image.
type Padding = tensor.Padding

// PadMode selects how border pixels are synthesized.
type PadMode = tensor.PadMode

// Padding modes.
const (
	PadConstant  PadMode = tensor.PadConstant
	PadReflect   PadMode = tensor.PadReflect
	PadReplicate PadMode = tensor.PadReplicate
	PadCircular  PadMode = tensor.PadCircular
)

// ParsePadMode parses "constant" (or "zeros"), "reflect", "replicate" and
// "circular".
func ParsePadMode(s string) (PadMode, error) {
	return tensor.ParsePadMode(s)
}

// Tensor is a float32 tensor bound to backend B.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros(tensor.Shape{2, 3}, backend)
//	x.Set(1.5, 0, 2)
type Tensor[B Backend] = tensor.Tensor[B]

// Creation functions

// Zeros creates a tensor filled with zeros.
func Zeros[B Backend](shape Shape, b B) *Tensor[B] {
	return tensor.Zeros(shape, b)
}

// Ones creates a tensor filled with ones.
func Ones[B Backend](shape Shape, b B) *Tensor[B] {
	return tensor.Ones(shape, b)
}

// Full creates a tensor filled with a specific value.
func Full[B Backend](shape Shape, value float32, b B) *Tensor[B] {
	return tensor.Full(shape, value, b)
}

// Randn creates a tensor of N(0, 1) samples drawn from rng (nil for the
// global source).
//
// Example:
//
//	rng := rand.New(rand.NewPCG(1, 2))
//	x := tensor.Randn(tensor.Shape{1, 3, 32, 64}, rng, backend)
func Randn[B Backend](shape Shape, rng *rand.Rand, b B) *Tensor[B] {
	return tensor.Randn(shape, rng, b)
}

// FromSlice creates a tensor from a Go slice. The data is copied.
//
// Example:
//
//	backend := cpu.New()
//	data := []float32{1, 2, 3, 4, 5, 6}
//	x, err := tensor.FromSlice(data, tensor.Shape{2, 3}, backend)
func FromSlice[B Backend](data []float32, shape Shape, b B) (*Tensor[B], error) {
	return tensor.FromSlice(data, shape, b)
}

// New creates a tensor from a raw tensor.
//
// This is a low-level function. Most users should use creation functions like
// Zeros or FromSlice instead.
func New[B Backend](raw *RawTensor, b B) *Tensor[B] {
	return tensor.New(raw, b)
}

// Cat concatenates tensors along a dimension.
//
// Example:
//
//	c := tensor.Cat([]*tensor.Tensor[B]{skip, upsampled}, 1)  // channel concat
func Cat[B Backend](tensors []*Tensor[B], dim int) *Tensor[B] {
	return tensor.Cat(tensors, dim)
}
