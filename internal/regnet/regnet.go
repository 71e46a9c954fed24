package regnet

import (
	"fmt"
	"math/rand/v2"

	"github.com/born-ml/regnet/internal/nn"
	"github.com/born-ml/regnet/internal/tensor"
)

// MinInputSize is the smallest height and width the four pooling stages
// accept.
const MinInputSize = 16

// CheckInputSize returns an ErrInputTooSmall if an h x w input cannot pass
// through the network. Instance norm needs more than one bottleneck pixel,
// so 16x16 is only accepted with batch norm.
func (c Config) CheckInputSize(h, w int) error {
	if h < MinInputSize || w < MinInputSize {
		return fmt.Errorf("%w: %dx%d smaller than %dx%d", ErrInputTooSmall, h, w, MinInputSize, MinInputSize)
	}
	if c.Norm == InstanceNorm && (h/MinInputSize)*(w/MinInputSize) < 2 {
		return fmt.Errorf("%w: %dx%d leaves a 1x1 bottleneck for instance norm", ErrInputTooSmall, h, w)
	}
	return nil
}

// Option configures New.
type Option func(*options)

type options struct {
	rng *rand.Rand
}

// WithSeed makes weight initialization reproducible.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewPCG(seed, seed)) //nolint:gosec // G404: weights, not secrets
	}
}

// WithRand draws initial weights from rng.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// RegNet is a U-Net for image-to-image regression.
//
//	inc   -> down1 -> down2 -> down3 -> down4
//	                                      |
//	outc <- up4  <-  up3  <-  up2  <-  up1
//
// Each up stage merges the previous decoder output with the encoder output
// of the same resolution. Channel plan for base filters nf:
//
//	inc    in_c -> nf
//	down1  nf   -> 2nf    up1  16nf -> 4nf
//	down2  2nf  -> 4nf    up2  8nf  -> 2nf
//	down3  4nf  -> 8nf    up3  4nf  -> nf
//	down4  8nf  -> 8nf    up4  2nf  -> nf
//	outc   nf   -> out_c
type RegNet[B tensor.Backend] struct {
	cfg     Config
	backend B

	inc   *IConv[B]
	downs [4]*Down[B]
	ups   [4]*Up[B]
	outc  *OConv[B]
}

// New builds a network from cfg. Configuration errors are reported before
// any weight is allocated.
func New[B tensor.Backend](cfg Config, backend B, opts ...Option) (*RegNet[B], error) {
	block, err := cfg.BlockOptions()
	if err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	var initOpts []nn.InitOption
	if o.rng != nil {
		initOpts = append(initOpts, nn.WithRand(o.rng))
	}

	nf := cfg.BaseFilters
	r := &RegNet[B]{cfg: cfg, backend: backend}

	if r.inc, err = NewIConv(cfg.InChannels, nf, block, backend, initOpts...); err != nil {
		return nil, fmt.Errorf("inc: %w", err)
	}
	for i, ch := range downChannels(nf) {
		if r.downs[i], err = NewDown(ch[0], ch[1], block, backend, initOpts...); err != nil {
			return nil, fmt.Errorf("down%d: %w", i+1, err)
		}
	}
	for i, ch := range upChannels(nf) {
		if r.ups[i], err = NewUp(ch[0], ch[1], block, backend, initOpts...); err != nil {
			return nil, fmt.Errorf("up%d: %w", i+1, err)
		}
	}
	if r.outc, err = NewOConv(nf, cfg.OutChannels, backend, initOpts...); err != nil {
		return nil, fmt.Errorf("outc: %w", err)
	}

	return r, nil
}

func downChannels(nf int) [4][2]int {
	return [4][2]int{{nf, 2 * nf}, {2 * nf, 4 * nf}, {4 * nf, 8 * nf}, {8 * nf, 8 * nf}}
}

func upChannels(nf int) [4][2]int {
	return [4][2]int{{16 * nf, 4 * nf}, {8 * nf, 2 * nf}, {4 * nf, nf}, {2 * nf, nf}}
}

// Forward maps [N, in_c, H, W] to [N, out_c, H, W].
//
// H and W must pass Config.CheckInputSize. Sizes that are not multiples of
// 16 are handled by the up stages' reconciliation padding.
func (r *RegNet[B]) Forward(x *tensor.Tensor[B]) *tensor.Tensor[B] {
	_, c, h, w := x.Shape().NCHW("regnet")
	if c != r.cfg.InChannels {
		panic(fmt.Sprintf("regnet: input channels %d != expected %d", c, r.cfg.InChannels))
	}
	if err := r.cfg.CheckInputSize(h, w); err != nil {
		panic("regnet: " + err.Error())
	}

	// skips[0] is inc, skips[i] is down i.
	var skips [5]*tensor.Tensor[B]
	skips[0] = r.inc.Forward(x)
	for i, down := range r.downs {
		skips[i+1] = down.Forward(skips[i])
	}

	y := skips[4]
	for i, up := range r.ups {
		y = up.Forward(y, skips[3-i])
	}

	return r.outc.Forward(y)
}

type stage[B tensor.Backend] struct {
	name string
	m    interface {
		stateful
		Parameters() []*nn.Parameter[B]
	}
	in, out int
}

func (r *RegNet[B]) stages() []stage[B] {
	s := []stage[B]{{name: "inc", m: r.inc, in: r.inc.in, out: r.inc.out}}
	for i, d := range r.downs {
		s = append(s, stage[B]{name: fmt.Sprintf("down%d", i+1), m: d, in: d.in, out: d.out})
	}
	for i, u := range r.ups {
		s = append(s, stage[B]{name: fmt.Sprintf("up%d", i+1), m: u, in: u.in, out: u.out})
	}
	return append(s, stage[B]{name: "outc", m: r.outc, in: r.cfg.BaseFilters, out: r.cfg.OutChannels})
}

// Parameters returns every learned parameter, stage by stage.
func (r *RegNet[B]) Parameters() []*nn.Parameter[B] {
	var params []*nn.Parameter[B]
	for _, s := range r.stages() {
		params = append(params, s.m.Parameters()...)
	}
	return params
}

// StateDict returns all parameters and buffers under PyTorch-compatible
// names such as inc.conv.conv.0.conv.weight or outc.conv.bias.
func (r *RegNet[B]) StateDict() map[string]*tensor.RawTensor {
	dict := make(map[string]*tensor.RawTensor)
	for _, s := range r.stages() {
		nn.MergeState(dict, s.name, s.m.StateDict())
	}
	return dict
}

// LoadStateDict copies a state dictionary into the network. Entries the
// network does not own are ignored.
func (r *RegNet[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	for _, s := range r.stages() {
		if err := s.m.LoadStateDict(nn.SubState(stateDict, s.name)); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

// SetTraining switches batch norm layers between batch statistics and
// running statistics. Instance norm networks are unaffected.
func (r *RegNet[B]) SetTraining(training bool) {
	r.inc.SetTraining(training)
	for _, d := range r.downs {
		d.SetTraining(training)
	}
	for _, u := range r.ups {
		u.SetTraining(training)
	}
}

// Config returns the configuration the network was built from.
func (r *RegNet[B]) Config() Config {
	return r.cfg
}

// Backend returns the compute backend.
func (r *RegNet[B]) Backend() B {
	return r.backend
}

// StageInfo summarizes one stage for a given input size.
type StageInfo struct {
	Name        string
	InChannels  int
	OutChannels int
	Params      int
	OutShape    tensor.Shape // for a batch of one
}

// Stages describes every stage for an input of height x width.
func (r *RegNet[B]) Stages(height, width int) []StageInfo {
	// Spatial size after inc and each down stage (floor pooling).
	var hs, ws [5]int
	hs[0], ws[0] = height, width
	for i := 1; i < 5; i++ {
		hs[i], ws[i] = hs[i-1]/2, ws[i-1]/2
	}

	infos := make([]StageInfo, 0, 10)
	for i, s := range r.stages() {
		// inc and down i produce level i; up i produces level 4-i; outc level 0.
		level := 0
		switch {
		case i <= 4:
			level = i
		case i <= 8:
			level = 8 - i
		}
		infos = append(infos, StageInfo{
			Name:        s.name,
			InChannels:  s.in,
			OutChannels: s.out,
			Params:      nn.CountElements(s.m.Parameters()),
			OutShape:    tensor.Shape{1, s.out, hs[level], ws[level]},
		})
	}
	return infos
}

// NumParameters returns the number of learned scalars.
func (r *RegNet[B]) NumParameters() int {
	return nn.CountElements(r.Parameters())
}
