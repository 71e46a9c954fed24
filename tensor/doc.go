// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public tensor types of the regnet framework.
//
// # Overview
//
// Tensors are dense, row-major float32 arrays bound to a compute backend:
//   - Tensor[B]: High-level tensor generic over its backend
//   - RawTensor: Low-level storage shared with backends
//   - Backend: Interface for device-specific compute implementations
//   - Shape, Padding, PadMode, Device: Core type definitions
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/regnet/backend/cpu"
//	    "github.com/born-ml/regnet/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x := tensor.Zeros(tensor.Shape{1, 3, 64, 128}, backend)
//	    y, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{1, 1, 2, 2}, backend)
//	}
//
// # Memory Layout
//
// Image tensors use NCHW layout: [batch, channels, height, width]. The
// last axis is contiguous.
package tensor
