package regnet

import (
	"fmt"

	"github.com/born-ml/regnet/internal/nn"
	"github.com/born-ml/regnet/internal/tensor"
)

// BlockOptions configures the conv blocks of a network.
type BlockOptions struct {
	Conv ConvKind
	Norm NormKind
	Act  ActKind
	Pad  nn.PadPolicy
}

// DefaultBlockOptions returns conv2 blocks with instance norm, ReLU and
// panoramic padding.
func DefaultBlockOptions() BlockOptions {
	return BlockOptions{Conv: Conv2Kind, Norm: InstanceNorm, Act: ReLU, Pad: nn.Panoramic()}
}

func checkChannels(op string, in, out int) error {
	if in <= 0 || out <= 0 {
		return fmt.Errorf("%s: %w: in=%d, out=%d", op, ErrInvalidConfig, in, out)
	}
	return nil
}

// Conv1 is the basic unit: pad by 1 with the block's policy, 3x3
// convolution without bias, norm, activation.
//
//	[N, in, H, W] -> [N, out, H, W]
//
// State dictionary keys: conv.weight and, for batch norm, norm.weight,
// norm.bias, norm.running_mean, norm.running_var.
type Conv1[B tensor.Backend] struct {
	pad  *nn.Pad2D[B]
	conv *nn.Conv2D[B]
	norm nn.Module[B]
	act  nn.Module[B]
}

// NewConv1 creates a conv unit. opts.Conv is ignored.
func NewConv1[B tensor.Backend](in, out int, opts BlockOptions, backend B, initOpts ...nn.InitOption) (*Conv1[B], error) {
	if err := checkChannels("conv1", in, out); err != nil {
		return nil, err
	}
	if err := opts.Norm.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Act.Validate(); err != nil {
		return nil, err
	}

	var norm nn.Module[B]
	if opts.Norm == BatchNorm {
		norm = nn.NewBatchNorm2D(out, nn.DefaultNormEps, backend)
	} else {
		norm = nn.NewInstanceNorm2D(out, nn.DefaultNormEps, false, backend)
	}

	var act nn.Module[B]
	if opts.Act == Leaky {
		act = nn.NewLeakyReLU[B](nn.DefaultLeakySlope)
	} else {
		act = nn.NewReLU[B]()
	}

	return &Conv1[B]{
		pad:  nn.NewPad2D[B](tensor.Uniform(1), opts.Pad),
		conv: nn.NewConv2D(in, out, 3, 3, 1, 0, false, backend, initOpts...),
		norm: norm,
		act:  act,
	}, nil
}

// Forward applies pad, conv, norm and the in-place activation.
func (c *Conv1[B]) Forward(x *tensor.Tensor[B]) *tensor.Tensor[B] {
	return c.act.Forward(c.norm.Forward(c.conv.Forward(c.pad.Forward(x))))
}

// Parameters returns the conv weight and the norm's affine parameters.
func (c *Conv1[B]) Parameters() []*nn.Parameter[B] {
	return append(c.conv.Parameters(), c.norm.Parameters()...)
}

// StateDict returns conv.* and norm.* entries.
func (c *Conv1[B]) StateDict() map[string]*tensor.RawTensor {
	dict := make(map[string]*tensor.RawTensor)
	nn.MergeState(dict, "conv", c.conv.StateDict())
	nn.MergeState(dict, "norm", c.norm.StateDict())
	return dict
}

// LoadStateDict loads conv.* and norm.* entries.
func (c *Conv1[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	if err := c.conv.LoadStateDict(nn.SubState(stateDict, "conv")); err != nil {
		return fmt.Errorf("conv: %w", err)
	}
	if err := c.norm.LoadStateDict(nn.SubState(stateDict, "norm")); err != nil {
		return fmt.Errorf("norm: %w", err)
	}
	return nil
}

// SetTraining switches a batch norm between batch and running statistics.
func (c *Conv1[B]) SetTraining(training bool) {
	nn.SetTraining(c.norm, training)
}

// String returns a string representation of the unit.
func (c *Conv1[B]) String() string {
	return fmt.Sprintf("Conv1(%v, %v, %v, %v)", c.pad, c.conv, c.norm, c.act)
}

// Conv2 is two Conv1 units in sequence (in -> out -> out). State keys are
// conv.0.* and conv.1.*.
type Conv2[B tensor.Backend] struct {
	conv *nn.Sequential[B]
}

// NewConv2 creates a double conv unit. opts.Conv is ignored.
func NewConv2[B tensor.Backend](in, out int, opts BlockOptions, backend B, initOpts ...nn.InitOption) (*Conv2[B], error) {
	first, err := NewConv1(in, out, opts, backend, initOpts...)
	if err != nil {
		return nil, err
	}
	second, err := NewConv1(out, out, opts, backend, initOpts...)
	if err != nil {
		return nil, err
	}
	return &Conv2[B]{conv: nn.NewSequential[B](first, second)}, nil
}

// Forward applies both units.
func (c *Conv2[B]) Forward(x *tensor.Tensor[B]) *tensor.Tensor[B] {
	return c.conv.Forward(x)
}

// Parameters returns the parameters of both units.
func (c *Conv2[B]) Parameters() []*nn.Parameter[B] {
	return c.conv.Parameters()
}

// StateDict returns conv.0.* and conv.1.* entries.
func (c *Conv2[B]) StateDict() map[string]*tensor.RawTensor {
	return prefixed("conv", c.conv)
}

// LoadStateDict loads conv.0.* and conv.1.* entries.
func (c *Conv2[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	return loadPrefixed("conv", c.conv, stateDict)
}

// SetTraining propagates the mode to both units.
func (c *Conv2[B]) SetTraining(training bool) {
	c.conv.SetTraining(training)
}

// String returns a string representation of the unit.
func (c *Conv2[B]) String() string {
	return fmt.Sprintf("Conv2(%v, %v)", c.conv.Module(0), c.conv.Module(1))
}

// newBlock builds the conv block selected by opts.Conv.
func newBlock[B tensor.Backend](in, out int, opts BlockOptions, backend B, initOpts []nn.InitOption) (nn.Module[B], error) {
	if err := opts.Conv.Validate(); err != nil {
		return nil, err
	}
	if opts.Conv == Conv1Kind {
		block, err := NewConv1(in, out, opts, backend, initOpts...)
		if err != nil {
			return nil, err
		}
		return block, nil
	}
	block, err := NewConv2(in, out, opts, backend, initOpts...)
	if err != nil {
		return nil, err
	}
	return block, nil
}

// IConv is the input stem: a conv block under the conv.* prefix.
type IConv[B tensor.Backend] struct {
	conv nn.Module[B]
	in   int
	out  int
}

// NewIConv creates the input stem. An unknown opts.Conv is an
// ErrUnknownConv.
func NewIConv[B tensor.Backend](in, out int, opts BlockOptions, backend B, initOpts ...nn.InitOption) (*IConv[B], error) {
	conv, err := newBlock(in, out, opts, backend, initOpts)
	if err != nil {
		return nil, fmt.Errorf("iconv: %w", err)
	}
	return &IConv[B]{conv: conv, in: in, out: out}, nil
}

// Forward applies the block.
func (c *IConv[B]) Forward(x *tensor.Tensor[B]) *tensor.Tensor[B] {
	return c.conv.Forward(x)
}

// Parameters returns the block's parameters.
func (c *IConv[B]) Parameters() []*nn.Parameter[B] {
	return c.conv.Parameters()
}

// StateDict returns conv.* entries.
func (c *IConv[B]) StateDict() map[string]*tensor.RawTensor {
	return prefixed("conv", c.conv)
}

// LoadStateDict loads conv.* entries.
func (c *IConv[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	return loadPrefixed("conv", c.conv, stateDict)
}

// SetTraining propagates the mode to the block.
func (c *IConv[B]) SetTraining(training bool) {
	nn.SetTraining(c.conv, training)
}

// Down halves the spatial size with a 2x2 max pool and applies a conv
// block. It mirrors nn.Sequential(MaxPool2d(2), block), so block state
// lives under conv.1.*.
type Down[B tensor.Backend] struct {
	conv *nn.Sequential[B]
	in   int
	out  int
}

// NewDown creates a downsampling stage. An unknown opts.Conv is an
// ErrUnknownConv.
func NewDown[B tensor.Backend](in, out int, opts BlockOptions, backend B, initOpts ...nn.InitOption) (*Down[B], error) {
	block, err := newBlock(in, out, opts, backend, initOpts)
	if err != nil {
		return nil, fmt.Errorf("down: %w", err)
	}
	return &Down[B]{
		conv: nn.NewSequential[B](nn.NewMaxPool2D(2, 2, backend), block),
		in:   in,
		out:  out,
	}, nil
}

// Forward pools then convolves: [N, in, H, W] -> [N, out, H/2, W/2].
func (d *Down[B]) Forward(x *tensor.Tensor[B]) *tensor.Tensor[B] {
	return d.conv.Forward(x)
}

// Parameters returns the block's parameters.
func (d *Down[B]) Parameters() []*nn.Parameter[B] {
	return d.conv.Parameters()
}

// StateDict returns conv.1.* entries.
func (d *Down[B]) StateDict() map[string]*tensor.RawTensor {
	return prefixed("conv", d.conv)
}

// LoadStateDict loads conv.1.* entries.
func (d *Down[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	return loadPrefixed("conv", d.conv, stateDict)
}

// SetTraining propagates the mode to the block.
func (d *Down[B]) SetTraining(training bool) {
	d.conv.SetTraining(training)
}

// Up is a decoder stage. It upsamples the coarse input, pads it to the
// skip tensor's size, concatenates [skip, upsampled] on channels and
// applies a conv block whose input channels are the sum of both.
type Up[B tensor.Backend] struct {
	upsample *nn.Upsample[B]
	policy   nn.PadPolicy
	conv     nn.Module[B]
	in       int
	out      int
}

// NewUp creates a decoder stage. in is the channel count after
// concatenation. An unknown opts.Conv is an ErrUnknownConv.
func NewUp[B tensor.Backend](in, out int, opts BlockOptions, backend B, initOpts ...nn.InitOption) (*Up[B], error) {
	conv, err := newBlock(in, out, opts, backend, initOpts)
	if err != nil {
		return nil, fmt.Errorf("up: %w", err)
	}
	return &Up[B]{
		upsample: nn.NewUpsample[B](2, true),
		policy:   opts.Pad,
		conv:     conv,
		in:       in,
		out:      out,
	}, nil
}

// Forward merges the coarse tensor x1 into the skip tensor x2.
//
// x1 is upsampled 2x (bilinear, aligned corners), then padded by the
// remaining height and width deficit; an odd deficit puts the larger half
// on the bottom / right. Panoramic stages wrap the width deficit and
// replicate the height deficit.
func (u *Up[B]) Forward(x1, x2 *tensor.Tensor[B]) *tensor.Tensor[B] {
	x1 = u.upsample.Forward(x1)

	n1, c1, h1, w1 := x1.Shape().NCHW("up")
	n2, c2, h2, w2 := x2.Shape().NCHW("up")
	if n1 != n2 {
		panic(fmt.Sprintf("up: batch size %d != skip batch size %d", n1, n2))
	}
	if c1+c2 != u.in {
		panic(fmt.Sprintf("up: concatenated channels %d+%d != expected %d", c2, c1, u.in))
	}

	dy, dx := h2-h1, w2-w1
	if dy < 0 || dx < 0 {
		panic(fmt.Sprintf("up: upsampled %v is larger than skip %v", x1.Shape(), x2.Shape()))
	}
	if dy != 0 || dx != 0 {
		x1 = nn.ApplyPad(x1, reconcilePadding(h1, w1, h2, w2), u.policy)
	}

	return u.conv.Forward(tensor.Cat([]*tensor.Tensor[B]{x2, x1}, 1))
}

// reconcilePadding grows an h1 x w1 map to h2 x w2. An odd deficit puts the
// larger half on the bottom / right.
func reconcilePadding(h1, w1, h2, w2 int) tensor.Padding {
	dy, dx := h2-h1, w2-w1
	return tensor.Padding{
		Left:   dx / 2,
		Right:  dx - dx/2,
		Top:    dy / 2,
		Bottom: dy - dy/2,
	}
}

// Parameters returns the block's parameters.
func (u *Up[B]) Parameters() []*nn.Parameter[B] {
	return u.conv.Parameters()
}

// StateDict returns conv.* entries.
func (u *Up[B]) StateDict() map[string]*tensor.RawTensor {
	return prefixed("conv", u.conv)
}

// LoadStateDict loads conv.* entries.
func (u *Up[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	return loadPrefixed("conv", u.conv, stateDict)
}

// SetTraining propagates the mode to the block.
func (u *Up[B]) SetTraining(training bool) {
	nn.SetTraining(u.conv, training)
}

// OConv is the output head: a 1x1 convolution with bias.
type OConv[B tensor.Backend] struct {
	conv *nn.Conv2D[B]
}

// NewOConv creates the output head.
func NewOConv[B tensor.Backend](in, out int, backend B, initOpts ...nn.InitOption) (*OConv[B], error) {
	if err := checkChannels("oconv", in, out); err != nil {
		return nil, err
	}
	return &OConv[B]{conv: nn.NewConv2D(in, out, 1, 1, 1, 0, true, backend, initOpts...)}, nil
}

// Forward applies the 1x1 convolution.
func (o *OConv[B]) Forward(x *tensor.Tensor[B]) *tensor.Tensor[B] {
	return o.conv.Forward(x)
}

// Parameters returns weight and bias.
func (o *OConv[B]) Parameters() []*nn.Parameter[B] {
	return o.conv.Parameters()
}

// StateDict returns conv.weight and conv.bias.
func (o *OConv[B]) StateDict() map[string]*tensor.RawTensor {
	return prefixed("conv", o.conv)
}

// LoadStateDict loads conv.weight and conv.bias.
func (o *OConv[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	return loadPrefixed("conv", o.conv, stateDict)
}

type stateful interface {
	StateDict() map[string]*tensor.RawTensor
	LoadStateDict(map[string]*tensor.RawTensor) error
}

func prefixed(prefix string, m stateful) map[string]*tensor.RawTensor {
	dict := make(map[string]*tensor.RawTensor)
	nn.MergeState(dict, prefix, m.StateDict())
	return dict
}

func loadPrefixed(prefix string, m stateful, stateDict map[string]*tensor.RawTensor) error {
	if err := m.LoadStateDict(nn.SubState(stateDict, prefix)); err != nil {
		return fmt.Errorf("%s: %w", prefix, err)
	}
	return nil
}
