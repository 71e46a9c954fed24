package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/regnet/internal/parallel"
	"github.com/born-ml/regnet/internal/tensor"
)

// UpsampleBilinear resizes the spatial dimensions of [N, C, H, W] to
// [N, C, outH, outW] with bilinear interpolation.
//
// With alignCorners the corner pixels of input and output coincide:
//
//	src = dst * (in - 1) / (out - 1)
//
// Without it pixel centers are aligned:
//
//	src = (dst + 0.5) * in / out - 0.5, clamped at 0
func (cpu *CPUBackend) UpsampleBilinear(x *tensor.RawTensor, outH, outW int, alignCorners bool) *tensor.RawTensor {
	N, C, H, W := x.Shape().NCHW("upsample_bilinear")
	if outH <= 0 || outW <= 0 {
		panic(fmt.Sprintf("upsample_bilinear: invalid output size %dx%d", outH, outW))
	}

	output := tensor.MustRaw("upsample_bilinear", tensor.Shape{N, C, outH, outW}, cpu.device)

	ys := linearTaps(H, outH, alignCorners)
	xs := linearTaps(W, outW, alignCorners)

	in := x.AsFloat32()
	out := output.AsFloat32()

	parallel.ForBatch(N, C, func(n, c int) {
		src := in[(n*C+c)*H*W:]
		dst := out[(n*C+c)*outH*outW:]
		for oh, ty := range ys {
			top := src[ty.i0*W:]
			bottom := src[ty.i1*W:]
			for ow, tx := range xs {
				t := top[tx.i0]*(1-tx.l) + top[tx.i1]*tx.l
				b := bottom[tx.i0]*(1-tx.l) + bottom[tx.i1]*tx.l
				dst[oh*outW+ow] = t*(1-ty.l) + b*ty.l
			}
		}
	}, cpu.planes())

	return output
}

// tap is one interpolated coordinate: value = src[i0]*(1-l) + src[i1]*l.
type tap struct {
	i0, i1 int
	l      float32
}

func linearTaps(in, out int, alignCorners bool) []tap {
	taps := make([]tap, out)
	for o := range taps {
		var src float64
		if alignCorners {
			if out > 1 {
				src = float64(o) * float64(in-1) / float64(out-1)
			}
		} else {
			src = (float64(o)+0.5)*float64(in)/float64(out) - 0.5
			if src < 0 {
				src = 0
			}
		}

		i0 := min(int(math.Floor(src)), in-1)
		i1 := min(i0+1, in-1)
		taps[o] = tap{i0: i0, i1: i1, l: float32(src - float64(i0))}
	}
	return taps
}
