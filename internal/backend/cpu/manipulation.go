package cpu

import (
	"fmt"

	"github.com/born-ml/regnet/internal/tensor"
)

// Cat concatenates tensors along the specified dimension.
//
// All tensors must have the same rank and the same size in every dimension
// except dim. The output keeps the argument order: tensors[0] comes first.
//
// Example:
//
//	a: [1, 2, 8, 8], b: [1, 3, 8, 8]
//	Cat([a, b], 1) -> [1, 5, 8, 8]
func (cpu *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat: no tensors")
	}

	first := tensors[0].Shape()
	ndim := len(first)
	if dim < 0 {
		dim += ndim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("cat: dim %d out of range for %dD tensors", dim, ndim))
	}

	outShape := first.Clone()
	outShape[dim] = 0
	for i, t := range tensors {
		s := t.Shape()
		if len(s) != ndim {
			panic(fmt.Sprintf("cat: tensor %d has %dD shape %v, want %dD", i, len(s), s, ndim))
		}
		for d := range s {
			if d != dim && s[d] != first[d] {
				panic(fmt.Sprintf("cat: tensor %d shape %v mismatches %v outside dim %d", i, s, first, dim))
			}
		}
		outShape[dim] += s[dim]
	}

	// outer: product of dims before dim; inner: product of dims after dim.
	outer := 1
	for d := 0; d < dim; d++ {
		outer *= first[d]
	}
	inner := 1
	for d := dim + 1; d < ndim; d++ {
		inner *= first[d]
	}

	output := tensor.MustRaw("cat", outShape, cpu.device)
	out := output.AsFloat32()
	outBlock := outShape[dim] * inner

	offset := 0
	for _, t := range tensors {
		block := t.Shape()[dim] * inner
		src := t.AsFloat32()
		for o := 0; o < outer; o++ {
			copy(out[o*outBlock+offset:o*outBlock+offset+block], src[o*block:(o+1)*block])
		}
		offset += block
	}

	return output
}
