package nn

import (
	"errors"
	"fmt"
	"strings"

	"github.com/born-ml/regnet/internal/tensor"
)

// State dictionary errors.
var (
	ErrMissingTensor = errors.New("missing tensor in state dict")
	ErrShapeMismatch = errors.New("tensor shape mismatch")
)

// StateOf builds a state dictionary from params, keyed by parameter name.
func StateOf[B tensor.Backend](params ...*Parameter[B]) map[string]*tensor.RawTensor {
	dict := make(map[string]*tensor.RawTensor, len(params))
	for _, p := range params {
		dict[p.Name()] = p.Tensor().Raw()
	}
	return dict
}

// LoadInto copies dict entries into params by name.
func LoadInto[B tensor.Backend](stateDict map[string]*tensor.RawTensor, params ...*Parameter[B]) error {
	for _, p := range params {
		src, ok := stateDict[p.Name()]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingTensor, p.Name())
		}
		if err := p.Tensor().Raw().CopyFrom(src); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrShapeMismatch, p.Name(), err)
		}
	}
	return nil
}

// MergeState copies every entry of sub into dst under prefix + ".".
func MergeState(dst map[string]*tensor.RawTensor, prefix string, sub map[string]*tensor.RawTensor) {
	for name, raw := range sub {
		dst[prefix+"."+name] = raw
	}
}

// SubState returns the entries of dict under prefix + ".", with the prefix
// stripped.
func SubState(dict map[string]*tensor.RawTensor, prefix string) map[string]*tensor.RawTensor {
	p := prefix + "."
	sub := make(map[string]*tensor.RawTensor)
	for key, raw := range dict {
		if name, ok := strings.CutPrefix(key, p); ok && name != "" {
			sub[name] = raw
		}
	}
	return sub
}
