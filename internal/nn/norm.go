package nn

import (
	"fmt"

	"github.com/born-ml/regnet/internal/tensor"
)

// DefaultNormEps is the variance epsilon used by both norm layers.
const DefaultNormEps = 1e-5

// InstanceNorm2D normalizes each (sample, channel) plane independently.
//
//	y = (x - mean(x[n,c])) / sqrt(var(x[n,c]) + eps) * weight[c] + bias[c]
//
// Statistics are always computed from the input; there are no running
// statistics. Without affine the layer has no parameters (PyTorch's
// InstanceNorm2d default).
type InstanceNorm2D[B tensor.Backend] struct {
	numFeatures int
	eps         float32
	affine      bool

	weight *Parameter[B] // [C] or nil
	bias   *Parameter[B] // [C] or nil

	backend B
}

// NewInstanceNorm2D creates an instance norm over numFeatures channels.
func NewInstanceNorm2D[B tensor.Backend](numFeatures int, eps float32, affine bool, backend B) *InstanceNorm2D[B] {
	if numFeatures <= 0 {
		panic(fmt.Sprintf("instance_norm2d: invalid num_features %d", numFeatures))
	}

	n := &InstanceNorm2D[B]{
		numFeatures: numFeatures,
		eps:         eps,
		affine:      affine,
		backend:     backend,
	}
	if affine {
		n.weight = NewParameter("weight", tensor.Ones(tensor.Shape{numFeatures}, backend))
		n.bias = NewParameter("bias", tensor.Zeros(tensor.Shape{numFeatures}, backend))
	}
	return n
}

// Forward normalizes input.
func (n *InstanceNorm2D[B]) Forward(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	checkFeatures("instance_norm2d", input, n.numFeatures)

	var w, b *tensor.RawTensor
	if n.affine {
		w, b = n.weight.Tensor().Raw(), n.bias.Tensor().Raw()
	}
	return tensor.New(n.backend.InstanceNorm2D(input.Raw(), w, b, n.eps), n.backend)
}

// Parameters returns weight and bias when affine.
func (n *InstanceNorm2D[B]) Parameters() []*Parameter[B] {
	if n.affine {
		return []*Parameter[B]{n.weight, n.bias}
	}
	return []*Parameter[B]{}
}

// StateDict returns the affine parameters, if any.
func (n *InstanceNorm2D[B]) StateDict() map[string]*tensor.RawTensor {
	return StateOf(n.Parameters()...)
}

// LoadStateDict loads the affine parameters, if any.
func (n *InstanceNorm2D[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	return LoadInto(stateDict, n.Parameters()...)
}

// String returns a string representation of the layer.
func (n *InstanceNorm2D[B]) String() string {
	return fmt.Sprintf("InstanceNorm2D(%d, eps=%g, affine=%v)", n.numFeatures, n.eps, n.affine)
}

// BatchNorm2D normalizes each channel with statistics gathered over the
// batch and spatial dimensions.
//
// In training mode it normalizes with the current batch statistics and
// updates running_mean / running_var with momentum:
//
//	running = (1 - momentum) * running + momentum * batch_stat
//
// (running_var receives the unbiased batch variance). In evaluation mode it
// normalizes with the running statistics. Layers start in evaluation mode.
type BatchNorm2D[B tensor.Backend] struct {
	numFeatures int
	eps         float32
	momentum    float32
	training    bool

	weight      *Parameter[B] // [C], init 1
	bias        *Parameter[B] // [C], init 0
	runningMean *Parameter[B] // [C], init 0
	runningVar  *Parameter[B] // [C], init 1

	backend B
}

// NewBatchNorm2D creates a batch norm over numFeatures channels with
// momentum 0.1.
func NewBatchNorm2D[B tensor.Backend](numFeatures int, eps float32, backend B) *BatchNorm2D[B] {
	if numFeatures <= 0 {
		panic(fmt.Sprintf("batch_norm2d: invalid num_features %d", numFeatures))
	}

	shape := tensor.Shape{numFeatures}
	return &BatchNorm2D[B]{
		numFeatures: numFeatures,
		eps:         eps,
		momentum:    0.1,
		weight:      NewParameter("weight", tensor.Ones(shape, backend)),
		bias:        NewParameter("bias", tensor.Zeros(shape, backend)),
		runningMean: NewBuffer("running_mean", tensor.Zeros(shape, backend)),
		runningVar:  NewBuffer("running_var", tensor.Ones(shape, backend)),
		backend:     backend,
	}
}

// SetTraining switches between batch statistics (true) and running
// statistics (false).
func (n *BatchNorm2D[B]) SetTraining(training bool) {
	n.training = training
}

// Training reports the current mode.
func (n *BatchNorm2D[B]) Training() bool {
	return n.training
}

// Forward normalizes input.
func (n *BatchNorm2D[B]) Forward(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	checkFeatures("batch_norm2d", input, n.numFeatures)

	mean, variance := n.runningMean.Tensor().Raw(), n.runningVar.Tensor().Raw()
	if n.training {
		N, _, H, W := input.Shape().NCHW("batch_norm2d")
		count := N * H * W
		if count < 2 {
			panic(fmt.Sprintf("batch_norm2d: expected more than 1 value per channel when training, got input %v", input.Shape()))
		}

		mean, variance = n.backend.ChannelMoments(input.Raw())
		n.updateRunning(mean, variance, count)
	}

	out := n.backend.BatchNorm2D(input.Raw(), mean, variance,
		n.weight.Tensor().Raw(), n.bias.Tensor().Raw(), n.eps)
	return tensor.New(out, n.backend)
}

func (n *BatchNorm2D[B]) updateRunning(mean, variance *tensor.RawTensor, count int) {
	rm := n.runningMean.Tensor().Data()
	rv := n.runningVar.Tensor().Data()
	m := mean.AsFloat32()
	v := variance.AsFloat32()
	unbias := float32(count) / float32(count-1)

	for c := range rm {
		rm[c] = (1-n.momentum)*rm[c] + n.momentum*m[c]
		rv[c] = (1-n.momentum)*rv[c] + n.momentum*v[c]*unbias
	}
}

// Parameters returns weight and bias.
func (n *BatchNorm2D[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{n.weight, n.bias}
}

// Buffers returns running_mean and running_var.
func (n *BatchNorm2D[B]) Buffers() []*Parameter[B] {
	return []*Parameter[B]{n.runningMean, n.runningVar}
}

// StateDict returns weight, bias, running_mean and running_var.
func (n *BatchNorm2D[B]) StateDict() map[string]*tensor.RawTensor {
	return StateOf(append(n.Parameters(), n.Buffers()...)...)
}

// LoadStateDict loads weight, bias, running_mean and running_var.
// A num_batches_tracked entry, as written by PyTorch, is ignored.
func (n *BatchNorm2D[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	return LoadInto(stateDict, append(n.Parameters(), n.Buffers()...)...)
}

// String returns a string representation of the layer.
func (n *BatchNorm2D[B]) String() string {
	return fmt.Sprintf("BatchNorm2D(%d, eps=%g, momentum=%g)", n.numFeatures, n.eps, n.momentum)
}

func checkFeatures[B tensor.Backend](op string, input *tensor.Tensor[B], numFeatures int) {
	_, c, _, _ := input.Shape().NCHW(op)
	if c != numFeatures {
		panic(fmt.Sprintf("%s: input channels %d != expected %d", op, c, numFeatures))
	}
}
