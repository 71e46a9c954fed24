package nn

import (
	"fmt"

	"github.com/born-ml/regnet/internal/tensor"
)

// PanoramicName is the policy name of panoramic padding.
const PanoramicName = "pano"

// PadPolicy decides how a spatial border is synthesized.
//
// A panoramic policy wraps the width axis circularly (the left and right
// edges of a 360° image are neighbours) and replicates edge rows on the
// height axis (no vertical wrap). Any other policy applies one uniform
// mode to both axes.
type PadPolicy struct {
	Panoramic bool
	Mode      tensor.PadMode // used when !Panoramic
	Value     float32        // fill for tensor.PadConstant
}

// Panoramic returns the panoramic policy.
func Panoramic() PadPolicy {
	return PadPolicy{Panoramic: true}
}

// UniformPolicy returns a policy applying mode to every side.
func UniformPolicy(mode tensor.PadMode) PadPolicy {
	return PadPolicy{Mode: mode}
}

// ParsePadPolicy accepts "pano" or any tensor.ParsePadMode name.
func ParsePadPolicy(s string) (PadPolicy, error) {
	if s == PanoramicName {
		return Panoramic(), nil
	}
	mode, err := tensor.ParsePadMode(s)
	if err != nil {
		return PadPolicy{}, err
	}
	return UniformPolicy(mode), nil
}

// String returns the policy name accepted by ParsePadPolicy.
func (p PadPolicy) String() string {
	if p.Panoramic {
		return PanoramicName
	}
	return p.Mode.String()
}

// ApplyPad pads x according to policy.
//
// Panoramic padding is two passes: circular on width (Left/Right), then
// replicate on height (Top/Bottom). Passes with nothing to pad are skipped.
func ApplyPad[B tensor.Backend](x *tensor.Tensor[B], pad tensor.Padding, policy PadPolicy) *tensor.Tensor[B] {
	b := x.Backend()
	if !policy.Panoramic {
		return tensor.New(b.Pad2D(x.Raw(), pad, policy.Mode, policy.Value), b)
	}

	out := x.Raw()
	if pad.Left != 0 || pad.Right != 0 {
		out = b.Pad2D(out, tensor.Horizontal(pad.Left, pad.Right), tensor.PadCircular, 0)
	}
	if pad.Top != 0 || pad.Bottom != 0 {
		out = b.Pad2D(out, tensor.Vertical(pad.Top, pad.Bottom), tensor.PadReplicate, 0)
	}
	if out == x.Raw() {
		out = out.Clone()
	}
	return tensor.New(out, b)
}

// Pad2D is a parameter-free module that pads its input with a fixed Padding
// and PadPolicy.
type Pad2D[B tensor.Backend] struct {
	pad    tensor.Padding
	policy PadPolicy
}

// NewPad2D creates a padding module.
func NewPad2D[B tensor.Backend](pad tensor.Padding, policy PadPolicy) *Pad2D[B] {
	return &Pad2D[B]{pad: pad, policy: policy}
}

// Forward pads input.
func (p *Pad2D[B]) Forward(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	return ApplyPad(input, p.pad, p.policy)
}

// Parameters returns an empty slice.
func (p *Pad2D[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{}
}

// StateDict returns an empty map.
func (p *Pad2D[B]) StateDict() map[string]*tensor.RawTensor {
	return map[string]*tensor.RawTensor{}
}

// LoadStateDict is a no-op.
func (p *Pad2D[B]) LoadStateDict(map[string]*tensor.RawTensor) error {
	return nil
}

// Policy returns the padding policy.
func (p *Pad2D[B]) Policy() PadPolicy {
	return p.policy
}

// String returns a string representation of the layer.
func (p *Pad2D[B]) String() string {
	return fmt.Sprintf("Pad2D(padding=%v, mode=%s)", p.pad, p.policy)
}
