package tensor

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// All image operations work on [N, C, H, W] float32 tensors and allocate
// their output, except the *Inplace activations which overwrite x and return it.
//
// Implementations:
//   - CPU: Pure Go, parallel over planes and output channels
type Backend interface {
	// Convolutional operations
	Conv2D(input, kernel, bias *RawTensor, stride, padding int) *RawTensor // bias may be nil
	MaxPool2D(input *RawTensor, kernelSize, stride int) *RawTensor

	// Spatial operations
	Pad2D(x *RawTensor, pad Padding, mode PadMode, value float32) *RawTensor
	UpsampleBilinear(x *RawTensor, outH, outW int, alignCorners bool) *RawTensor

	// Normalization. weight and bias are per-channel and may be nil.
	InstanceNorm2D(x, weight, bias *RawTensor, eps float32) *RawTensor
	BatchNorm2D(x, mean, variance, weight, bias *RawTensor, eps float32) *RawTensor
	ChannelMoments(x *RawTensor) (mean, variance *RawTensor) // biased, over N, H, W

	// Activation functions (in place)
	ReLUInplace(x *RawTensor) *RawTensor
	LeakyReLUInplace(x *RawTensor, slope float32) *RawTensor

	// Manipulation operations
	Cat(tensors []*RawTensor, dim int) *RawTensor // concatenate along dimension

	// Metadata
	Name() string
	Device() Device
}
