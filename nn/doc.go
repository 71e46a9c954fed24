// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers for convolutional
// image-to-image networks.
//
// # Overview
//
// Layers are generic over the compute backend and share the Module
// interface:
//   - Conv2D, MaxPool2D, Upsample: Spatial layers
//   - Pad2D with PadPolicy: Explicit padding, including panoramic wrap
//   - InstanceNorm2D, BatchNorm2D: Normalization
//   - ReLU, LeakyReLU: In-place activations
//   - Sequential: Container for stacking layers
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/regnet/backend/cpu"
//	    "github.com/born-ml/regnet/nn"
//	    "github.com/born-ml/regnet/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    block := nn.NewSequential[*cpu.Backend](
//	        nn.NewPad2D[*cpu.Backend](tensor.Padding{Left: 1, Right: 1, Top: 1, Bottom: 1}, nn.Panoramic()),
//	        nn.NewConv2D(3, 16, 3, 3, 1, 0, false, backend),
//	        nn.NewInstanceNorm2D(16, nn.DefaultNormEps, false, backend),
//	        nn.NewReLU[*cpu.Backend](),
//	    )
//	    y := block.Forward(x)
//	}
//
// # Serialization
//
// StateDict keys follow PyTorch naming (weight, bias, running_mean,
// running_var; Sequential children prefixed by index). Save and Load move
// state dictionaries through SafeTensors files.
package nn
