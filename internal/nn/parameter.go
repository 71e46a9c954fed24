package nn

import (
	"fmt"

	"github.com/born-ml/regnet/internal/tensor"
)

// Parameter is a named tensor owned by a module.
//
// Learned parameters (weights, biases) and buffers (running statistics) are
// both Parameters; they differ only in Trainable. Both are serialized.
//
// Example:
//
//	weight := nn.NewParameter("weight", weightTensor)
//	w := weight.Tensor()
type Parameter[B tensor.Backend] struct {
	name      string           // Parameter name (e.g., "weight", "running_mean")
	tensor    *tensor.Tensor[B] // The parameter tensor
	trainable bool
}

// NewParameter creates a learned parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[B]) *Parameter[B] {
	return &Parameter[B]{name: name, tensor: t, trainable: true}
}

// NewBuffer creates a non-learned parameter such as a running statistic.
func NewBuffer[B tensor.Backend](name string, t *tensor.Tensor[B]) *Parameter[B] {
	return &Parameter[B]{name: name, tensor: t}
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[B] {
	return p.tensor
}

// Trainable reports whether the parameter is learned rather than a buffer.
func (p *Parameter[B]) Trainable() bool {
	return p.trainable
}

// String returns a short description of the parameter.
func (p *Parameter[B]) String() string {
	return fmt.Sprintf("Parameter(%s, shape=%v)", p.name, p.tensor.Shape())
}

// CountElements sums the element counts of params.
func CountElements[B tensor.Backend](params []*Parameter[B]) int {
	n := 0
	for _, p := range params {
		n += p.tensor.NumElements()
	}
	return n
}
