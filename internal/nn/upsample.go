package nn

import (
	"fmt"

	"github.com/born-ml/regnet/internal/tensor"
)

// Upsample scales the spatial dimensions of its input by an integer factor
// with bilinear interpolation.
type Upsample[B tensor.Backend] struct {
	scale        int
	alignCorners bool
}

// NewUpsample creates a bilinear upsampling module.
func NewUpsample[B tensor.Backend](scale int, alignCorners bool) *Upsample[B] {
	if scale <= 0 {
		panic(fmt.Sprintf("upsample: invalid scale factor %d", scale))
	}
	return &Upsample[B]{scale: scale, alignCorners: alignCorners}
}

// Forward upsamples [N, C, H, W] to [N, C, H*scale, W*scale].
func (u *Upsample[B]) Forward(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	_, _, h, w := input.Shape().NCHW("upsample")
	b := input.Backend()
	return tensor.New(b.UpsampleBilinear(input.Raw(), h*u.scale, w*u.scale, u.alignCorners), b)
}

// Parameters returns an empty slice.
func (u *Upsample[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{}
}

// StateDict returns an empty map.
func (u *Upsample[B]) StateDict() map[string]*tensor.RawTensor {
	return map[string]*tensor.RawTensor{}
}

// LoadStateDict is a no-op.
func (u *Upsample[B]) LoadStateDict(map[string]*tensor.RawTensor) error {
	return nil
}

// String returns a string representation of the layer.
func (u *Upsample[B]) String() string {
	return fmt.Sprintf("Upsample(scale_factor=%d, mode=bilinear, align_corners=%v)", u.scale, u.alignCorners)
}
