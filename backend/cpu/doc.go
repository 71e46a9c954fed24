// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Im2col algorithm for convolutions
//   - Constant, reflect, replicate and circular padding
//   - Bilinear resampling with or without aligned corners
//   - Parallel execution over planes and output channels
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/regnet/backend/cpu"
//	    "github.com/born-ml/regnet/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New(cpu.WithWorkers(4))
//	    x := tensor.Zeros(tensor.Shape{1, 3, 64, 128}, backend)
//	}
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each tensor operation
// is isolated and does not share mutable state; worker goroutines never
// outlive the operation that started them.
package cpu
