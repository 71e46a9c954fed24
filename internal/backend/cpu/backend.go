// Package cpu implements the CPU backend: pure Go image kernels that fan out
// over planes and output channels with bounded parallelism.
package cpu

import (
	"github.com/born-ml/regnet/internal/parallel"
	"github.com/born-ml/regnet/internal/tensor"
)

// Compile-time check.
var _ tensor.Backend = (*CPUBackend)(nil)

// CPUBackend implements tensor operations on CPU.
type CPUBackend struct {
	device tensor.Device
	par    parallel.Config
}

// Option configures a CPUBackend.
type Option func(*CPUBackend)

// WithWorkers bounds the number of goroutines a single op may use.
// n <= 1 disables parallelism.
func WithWorkers(n int) Option {
	return func(cpu *CPUBackend) {
		cpu.par.NumWorkers = n
		cpu.par.Enabled = n > 1
	}
}

// WithParallel replaces the whole parallel configuration.
func WithParallel(cfg parallel.Config) Option {
	return func(cpu *CPUBackend) {
		cpu.par = cfg
	}
}

// New creates a new CPU backend.
func New(opts ...Option) *CPUBackend {
	cpu := &CPUBackend{
		device: tensor.CPU,
		par:    parallel.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(cpu)
	}
	return cpu
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Workers returns the configured worker bound.
func (cpu *CPUBackend) Workers() int {
	if !cpu.par.Enabled {
		return 1
	}
	return cpu.par.NumWorkers
}

// planes returns the parallel config used for per-(n, c) plane loops.
func (cpu *CPUBackend) planes() parallel.Config {
	return cpu.par.WithMinChunk(4)
}

// channels returns the parallel config used for per-output-channel loops,
// where every item is a full dot-product sweep.
func (cpu *CPUBackend) channels() parallel.Config {
	return cpu.par.WithMinChunk(1)
}
