package cpu

import (
	"fmt"

	"github.com/born-ml/regnet/internal/parallel"
	"github.com/born-ml/regnet/internal/tensor"
)

// Conv2D performs 2D convolution using im2col algorithm.
//
// Input shape: [batch, in_channels, height, width]
// Kernel shape: [out_channels, in_channels, kernel_h, kernel_w]
// Bias shape: [out_channels] (optional, nil for no bias)
// Output shape: [batch, out_channels, out_h, out_w]
//
// Algorithm: Im2col, one batch item at a time
//  1. Transform input patches into rows (im2col)
//  2. For every output channel, dot the kernel row against every patch row
//  3. Write straight into [N, C_out, H_out, W_out] layout
//
// Output channels are independent, so step 2 is split across workers.
func (cpu *CPUBackend) Conv2D(input, kernel, bias *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	N, CIn, H, W := input.Shape().NCHW("conv2d")

	kernelShape := kernel.Shape()
	if len(kernelShape) != 4 {
		panic(fmt.Sprintf("conv2d: kernel must be 4D [C_out,C_in,K_h,K_w], got %dD", len(kernelShape)))
	}
	COut, CInK, KH, KW := kernelShape[0], kernelShape[1], kernelShape[2], kernelShape[3]

	if CIn != CInK {
		panic(fmt.Sprintf("conv2d: input channels %d != kernel channels %d", CIn, CInK))
	}
	if bias != nil && bias.NumElements() != COut {
		panic(fmt.Sprintf("conv2d: bias has %d elements, want %d", bias.NumElements(), COut))
	}
	if stride <= 0 || padding < 0 {
		panic(fmt.Sprintf("conv2d: invalid stride=%d padding=%d", stride, padding))
	}

	// out_h = (H + 2*padding - KH) / stride + 1
	// out_w = (W + 2*padding - KW) / stride + 1
	HOut := (H+2*padding-KH)/stride + 1
	WOut := (W+2*padding-KW)/stride + 1

	if HOut <= 0 || WOut <= 0 {
		panic(fmt.Sprintf("conv2d: invalid output dimensions: out_h=%d, out_w=%d (check stride/padding)", HOut, WOut))
	}

	output := tensor.MustRaw("conv2d", tensor.Shape{N, COut, HOut, WOut}, cpu.device)

	g := convGeometry{
		CIn: CIn, H: H, W: W,
		COut: COut, KH: KH, KW: KW,
		HOut: HOut, WOut: WOut,
		stride: stride, padding: padding,
	}

	var biasData []float32
	if bias != nil {
		biasData = bias.AsFloat32()
	}

	conv2dFloat32(output.AsFloat32(), input.AsFloat32(), kernel.AsFloat32(), biasData, N, g, cpu.channels())
	return output
}

type convGeometry struct {
	CIn, H, W       int
	COut, KH, KW    int
	HOut, WOut      int
	stride, padding int
}

func conv2dFloat32(out, in, kernel, bias []float32, N int, g convGeometry, cfg parallel.Config) {
	colWidth := g.CIn * g.KH * g.KW
	positions := g.HOut * g.WOut
	colBuf := make([]float32, positions*colWidth)

	inPlane := g.CIn * g.H * g.W
	outPlane := g.COut * positions

	for n := 0; n < N; n++ {
		im2colFloat32(colBuf, in[n*inPlane:(n+1)*inPlane], g)
		dst := out[n*outPlane : (n+1)*outPlane]

		parallel.For(g.COut, func(c int) {
			k := kernel[c*colWidth : (c+1)*colWidth]
			var b float32
			if bias != nil {
				b = bias[c]
			}
			row := dst[c*positions : (c+1)*positions]
			for j := range row {
				patch := colBuf[j*colWidth : (j+1)*colWidth]
				sum := float32(0)
				for i, kv := range k {
					sum += kv * patch[i]
				}
				row[j] = sum + b
			}
		}, cfg)
	}
}

// im2colFloat32 transforms one [C, H, W] image into patch rows.
//
// colBuf: [H_out * W_out, C * K_h * K_w]
//
// Each row holds the receptive field of one output position; taps that fall
// into the implicit zero padding are written as 0.
func im2colFloat32(colBuf, img []float32, g convGeometry) {
	bufIdx := 0
	for outH := 0; outH < g.HOut; outH++ {
		for outW := 0; outW < g.WOut; outW++ {
			hStart := outH*g.stride - g.padding
			wStart := outW*g.stride - g.padding

			for c := 0; c < g.CIn; c++ {
				for kh := 0; kh < g.KH; kh++ {
					h := hStart + kh
					for kw := 0; kw < g.KW; kw++ {
						w := wStart + kw
						if h >= 0 && h < g.H && w >= 0 && w < g.W {
							colBuf[bufIdx] = img[c*g.H*g.W+h*g.W+w]
						} else {
							colBuf[bufIdx] = 0
						}
						bufIdx++
					}
				}
			}
		}
	}
}
