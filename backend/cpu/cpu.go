// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/regnet/internal/backend/cpu"
	"github.com/born-ml/regnet/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// Option configures a CPU backend.
type Option = internalcpu.Option

// WithWorkers bounds the number of goroutines per operation. 1 runs every
// operation on the calling goroutine.
func WithWorkers(n int) Option {
	return internalcpu.WithWorkers(n)
}

// New creates a new CPU backend. By default it uses one worker per CPU.
//
// Example:
//
//	import (
//	    "github.com/born-ml/regnet/backend/cpu"
//	    "github.com/born-ml/regnet/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Zeros(tensor.Shape{2, 3}, backend)
//	}
func New(opts ...Option) *Backend {
	return internalcpu.New(opts...)
}
