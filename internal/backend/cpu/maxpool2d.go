package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/regnet/internal/parallel"
	"github.com/born-ml/regnet/internal/tensor"
)

// MaxPool2D performs 2D max pooling operation.
//
// Input shape: [batch, channels, height, width]
// Output shape: [batch, channels, out_height, out_width]
//
// Where:
//
//	out_height = (height - kernelSize) / stride + 1
//	out_width = (width - kernelSize) / stride + 1
//
// Trailing rows/columns that do not fill a window are dropped (floor mode).
func (cpu *CPUBackend) MaxPool2D(input *tensor.RawTensor, kernelSize, stride int) *tensor.RawTensor {
	N, C, H, W := input.Shape().NCHW("maxpool2d")

	if kernelSize <= 0 || stride <= 0 {
		panic(fmt.Sprintf("maxpool2d: invalid kernel_size=%d stride=%d", kernelSize, stride))
	}
	if H < kernelSize || W < kernelSize {
		panic(fmt.Sprintf("maxpool2d: input %dx%d is smaller than kernel %d", H, W, kernelSize))
	}

	HOut := (H-kernelSize)/stride + 1
	WOut := (W-kernelSize)/stride + 1

	if HOut <= 0 || WOut <= 0 {
		panic(fmt.Sprintf("maxpool2d: invalid output dimensions: out_h=%d, out_w=%d (input %dx%d, kernel %d)",
			HOut, WOut, H, W, kernelSize))
	}

	output := tensor.MustRaw("maxpool2d", tensor.Shape{N, C, HOut, WOut}, cpu.device)
	in := input.AsFloat32()
	out := output.AsFloat32()

	parallel.ForBatch(N, C, func(n, c int) {
		src := in[(n*C+c)*H*W:]
		dst := out[(n*C+c)*HOut*WOut:]
		for oh := 0; oh < HOut; oh++ {
			for ow := 0; ow < WOut; ow++ {
				maxVal := float32(math.Inf(-1))
				for kh := 0; kh < kernelSize; kh++ {
					row := src[(oh*stride+kh)*W:]
					for kw := 0; kw < kernelSize; kw++ {
						if v := row[ow*stride+kw]; v > maxVal {
							maxVal = v
						}
					}
				}
				dst[oh*WOut+ow] = maxVal
			}
		}
	}, cpu.planes())

	return output
}
