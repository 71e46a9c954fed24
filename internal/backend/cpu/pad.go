package cpu

import (
	"fmt"

	"github.com/born-ml/regnet/internal/parallel"
	"github.com/born-ml/regnet/internal/tensor"
)

// Pad2D pads the two spatial dimensions of an [N, C, H, W] tensor.
//
// Output shape: [N, C, H + top + bottom, W + left + right]
//
// Modes follow torch.nn.functional.pad:
//   - constant:  fill with value
//   - reflect:   mirror excluding the edge (pad < size)
//   - replicate: repeat the edge
//   - circular:  wrap around (pad <= size)
func (cpu *CPUBackend) Pad2D(x *tensor.RawTensor, pad tensor.Padding, mode tensor.PadMode, value float32) *tensor.RawTensor {
	N, C, H, W := x.Shape().NCHW("pad2d")

	if pad.Left < 0 || pad.Right < 0 || pad.Top < 0 || pad.Bottom < 0 {
		panic(fmt.Sprintf("pad2d: negative padding %v", pad))
	}
	checkPadFits("height", H, pad.Top, pad.Bottom, mode)
	checkPadFits("width", W, pad.Left, pad.Right, mode)

	HOut := H + pad.Top + pad.Bottom
	WOut := W + pad.Left + pad.Right
	output := tensor.MustRaw("pad2d", tensor.Shape{N, C, HOut, WOut}, cpu.device)
	if pad.IsZero() {
		copy(output.AsFloat32(), x.AsFloat32())
		return output
	}

	// Source index maps are shared by every plane.
	rowSrc := padIndexMap(H, pad.Top, HOut, mode)
	colSrc := padIndexMap(W, pad.Left, WOut, mode)

	in := x.AsFloat32()
	out := output.AsFloat32()

	parallel.ForBatch(N, C, func(n, c int) {
		src := in[(n*C+c)*H*W:]
		dst := out[(n*C+c)*HOut*WOut:]
		for oh, sh := range rowSrc {
			row := dst[oh*WOut : (oh+1)*WOut]
			if sh < 0 {
				fill(row, value)
				continue
			}
			for ow, sw := range colSrc {
				if sw < 0 {
					row[ow] = value
				} else {
					row[ow] = src[sh*W+sw]
				}
			}
		}
	}, cpu.planes())

	return output
}

func checkPadFits(axis string, size, before, after int, mode tensor.PadMode) {
	switch mode {
	case tensor.PadReflect:
		if before >= size || after >= size {
			panic(fmt.Sprintf("pad2d: reflect padding (%d, %d) must be smaller than %s %d", before, after, axis, size))
		}
	case tensor.PadCircular:
		if before > size || after > size {
			panic(fmt.Sprintf("pad2d: circular padding (%d, %d) must not exceed %s %d", before, after, axis, size))
		}
	case tensor.PadConstant, tensor.PadReplicate:
	default:
		panic(fmt.Sprintf("pad2d: unsupported mode %v", mode))
	}
}

// padIndexMap returns, for every output coordinate, the source coordinate it
// reads from, or -1 for a constant fill.
func padIndexMap(size, before, outSize int, mode tensor.PadMode) []int {
	m := make([]int, outSize)
	for o := range m {
		i := o - before
		switch {
		case i >= 0 && i < size:
			m[o] = i
		case mode == tensor.PadConstant:
			m[o] = -1
		case mode == tensor.PadReplicate:
			m[o] = min(max(i, 0), size-1)
		case mode == tensor.PadReflect:
			if i < 0 {
				m[o] = -i
			} else {
				m[o] = 2*(size-1) - i
			}
		case mode == tensor.PadCircular:
			m[o] = ((i % size) + size) % size
		}
	}
	return m
}

func fill(dst []float32, v float32) {
	for i := range dst {
		dst[i] = v
	}
}
