package cpu

import (
	"github.com/born-ml/regnet/internal/tensor"
)

// ReLUInplace applies max(0, x) to every element of x, overwriting it.
// Returns x.
func (cpu *CPUBackend) ReLUInplace(x *tensor.RawTensor) *tensor.RawTensor {
	data := x.AsFloat32()
	for i, v := range data {
		if v < 0 {
			data[i] = 0
		}
	}
	return x
}

// LeakyReLUInplace applies x for x >= 0 and slope*x otherwise, overwriting x.
// Returns x.
func (cpu *CPUBackend) LeakyReLUInplace(x *tensor.RawTensor, slope float32) *tensor.RawTensor {
	data := x.AsFloat32()
	for i, v := range data {
		if v < 0 {
			data[i] = v * slope
		}
	}
	return x
}
