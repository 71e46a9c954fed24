package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/regnet/internal/parallel"
	"github.com/born-ml/regnet/internal/tensor"
)

// InstanceNorm2D normalizes every (n, c) plane to zero mean and unit
// variance independently:
//
//	y = (x - mean) / sqrt(var + eps) * weight[c] + bias[c]
//
// Variance is biased (divided by H*W). weight and bias may be nil.
// Planes must hold more than one element.
func (cpu *CPUBackend) InstanceNorm2D(x, weight, bias *tensor.RawTensor, eps float32) *tensor.RawTensor {
	N, C, H, W := x.Shape().NCHW("instance_norm2d")
	if H*W <= 1 {
		panic(fmt.Sprintf("instance_norm2d: expected more than 1 spatial element, got input %v", x.Shape()))
	}
	checkChannelVector("instance_norm2d", "weight", weight, C)
	checkChannelVector("instance_norm2d", "bias", bias, C)

	output := tensor.MustRaw("instance_norm2d", tensor.Shape{N, C, H, W}, cpu.device)
	in := x.AsFloat32()
	out := output.AsFloat32()
	hw := H * W

	parallel.ForBatch(N, C, func(n, c int) {
		off := (n*C + c) * hw
		mean, variance := moments(in[off : off+hw])
		scale, shift := affine(weight, bias, c)
		normalize(out[off:off+hw], in[off:off+hw], mean, variance, eps, scale, shift)
	}, cpu.planes())

	return output
}

// BatchNorm2D normalizes channel c with the supplied statistics:
//
//	y = (x - mean[c]) / sqrt(variance[c] + eps) * weight[c] + bias[c]
func (cpu *CPUBackend) BatchNorm2D(x, mean, variance, weight, bias *tensor.RawTensor, eps float32) *tensor.RawTensor {
	N, C, H, W := x.Shape().NCHW("batch_norm2d")
	if mean == nil || variance == nil {
		panic("batch_norm2d: mean and variance are required")
	}
	checkChannelVector("batch_norm2d", "mean", mean, C)
	checkChannelVector("batch_norm2d", "variance", variance, C)
	checkChannelVector("batch_norm2d", "weight", weight, C)
	checkChannelVector("batch_norm2d", "bias", bias, C)

	output := tensor.MustRaw("batch_norm2d", tensor.Shape{N, C, H, W}, cpu.device)
	in := x.AsFloat32()
	out := output.AsFloat32()
	m := mean.AsFloat32()
	v := variance.AsFloat32()
	hw := H * W

	parallel.ForBatch(N, C, func(n, c int) {
		off := (n*C + c) * hw
		scale, shift := affine(weight, bias, c)
		normalize(out[off:off+hw], in[off:off+hw], float64(m[c]), float64(v[c]), eps, scale, shift)
	}, cpu.planes())

	return output
}

// ChannelMoments returns per-channel mean and biased variance over N, H, W.
// Both results have shape [C].
func (cpu *CPUBackend) ChannelMoments(x *tensor.RawTensor) (mean, variance *tensor.RawTensor) {
	N, C, H, W := x.Shape().NCHW("channel_moments")
	mean = tensor.MustRaw("channel_moments", tensor.Shape{C}, cpu.device)
	variance = tensor.MustRaw("channel_moments", tensor.Shape{C}, cpu.device)

	in := x.AsFloat32()
	m := mean.AsFloat32()
	v := variance.AsFloat32()
	hw := H * W
	count := float64(N * hw)

	parallel.For(C, func(c int) {
		var sum float64
		for n := 0; n < N; n++ {
			for _, val := range in[(n*C+c)*hw : (n*C+c+1)*hw] {
				sum += float64(val)
			}
		}
		mu := sum / count

		var sq float64
		for n := 0; n < N; n++ {
			for _, val := range in[(n*C+c)*hw : (n*C+c+1)*hw] {
				d := float64(val) - mu
				sq += d * d
			}
		}
		m[c] = float32(mu)
		v[c] = float32(sq / count)
	}, cpu.channels())

	return mean, variance
}

func checkChannelVector(op, name string, t *tensor.RawTensor, c int) {
	if t != nil && t.NumElements() != c {
		panic(fmt.Sprintf("%s: %s has %d elements, want %d", op, name, t.NumElements(), c))
	}
}

// moments returns mean and biased variance using two passes in float64.
func moments(xs []float32) (mean, variance float64) {
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean = sum / float64(len(xs))

	var sq float64
	for _, v := range xs {
		d := float64(v) - mean
		sq += d * d
	}
	return mean, sq / float64(len(xs))
}

func affine(weight, bias *tensor.RawTensor, c int) (scale, shift float32) {
	scale = 1
	if weight != nil {
		scale = weight.AsFloat32()[c]
	}
	if bias != nil {
		shift = bias.AsFloat32()[c]
	}
	return scale, shift
}

func normalize(dst, src []float32, mean, variance float64, eps, scale, shift float32) {
	inv := float32(1 / math.Sqrt(variance+float64(eps)))
	mu := float32(mean)
	for i, v := range src {
		dst[i] = (v-mu)*inv*scale + shift
	}
}
