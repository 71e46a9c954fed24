package nn

import (
	"fmt"

	"github.com/born-ml/regnet/internal/tensor"
)

// DefaultLeakySlope is the negative slope of the leaky activation used by
// the conv blocks.
const DefaultLeakySlope = 0.2

// ReLU is a Rectified Linear Unit activation module.
//
// Applies the element-wise function f(x) = max(0, x) in place: the input
// buffer is overwritten and returned.
//
// Example:
//
//	relu := nn.NewReLU[Backend]()
//	output := relu.Forward(input) // output == input
type ReLU[B tensor.Backend] struct{}

// NewReLU creates a new ReLU activation module.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return &ReLU[B]{}
}

// Forward applies ReLU activation in place.
func (r *ReLU[B]) Forward(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	input.Backend().ReLUInplace(input.Raw())
	return input
}

// Parameters returns an empty slice (ReLU has no trainable parameters).
func (r *ReLU[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{}
}

// StateDict returns an empty map.
func (r *ReLU[B]) StateDict() map[string]*tensor.RawTensor {
	return map[string]*tensor.RawTensor{}
}

// LoadStateDict is a no-op.
func (r *ReLU[B]) LoadStateDict(map[string]*tensor.RawTensor) error {
	return nil
}

// String returns a string representation of the layer.
func (r *ReLU[B]) String() string {
	return "ReLU(inplace=true)"
}

// LeakyReLU is a leaky rectifier: f(x) = x for x >= 0, slope*x otherwise.
// Like ReLU it works in place.
type LeakyReLU[B tensor.Backend] struct {
	slope float32
}

// NewLeakyReLU creates a LeakyReLU with the given negative slope.
func NewLeakyReLU[B tensor.Backend](slope float32) *LeakyReLU[B] {
	return &LeakyReLU[B]{slope: slope}
}

// Forward applies LeakyReLU activation in place.
func (r *LeakyReLU[B]) Forward(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	input.Backend().LeakyReLUInplace(input.Raw(), r.slope)
	return input
}

// Parameters returns an empty slice.
func (r *LeakyReLU[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{}
}

// StateDict returns an empty map.
func (r *LeakyReLU[B]) StateDict() map[string]*tensor.RawTensor {
	return map[string]*tensor.RawTensor{}
}

// LoadStateDict is a no-op.
func (r *LeakyReLU[B]) LoadStateDict(map[string]*tensor.RawTensor) error {
	return nil
}

// String returns a string representation of the layer.
func (r *LeakyReLU[B]) String() string {
	return fmt.Sprintf("LeakyReLU(negative_slope=%g, inplace=true)", r.slope)
}
