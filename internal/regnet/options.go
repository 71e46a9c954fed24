package regnet

import (
	"errors"
	"fmt"
)

// Construction errors. Every one of them is returned before any tensor is
// allocated.
var (
	ErrUnknownConv   = errors.New("unknown conv block")
	ErrUnknownNorm   = errors.New("unknown norm")
	ErrUnknownAct    = errors.New("unknown activation")
	ErrUnknownPad    = errors.New("unknown pad mode")
	ErrInvalidConfig = errors.New("invalid config")
)

// ErrInputTooSmall is returned by Config.CheckInputSize.
var ErrInputTooSmall = errors.New("input too small")

// ConvKind selects the conv block used by iconv, down and up.
type ConvKind string

// Conv block kinds.
const (
	Conv1Kind ConvKind = "conv1" // one pad-conv-norm-act unit
	Conv2Kind ConvKind = "conv2" // two units in sequence
)

// Validate reports an ErrUnknownConv for anything but conv1 and conv2.
func (k ConvKind) Validate() error {
	switch k {
	case Conv1Kind, Conv2Kind:
		return nil
	default:
		return fmt.Errorf("%w: %q (want conv1 or conv2)", ErrUnknownConv, string(k))
	}
}

// NormKind selects the normalization of a conv unit.
type NormKind string

// Norm kinds.
const (
	BatchNorm    NormKind = "bn"
	InstanceNorm NormKind = "in"
)

// Validate reports an ErrUnknownNorm for anything but bn and in.
func (k NormKind) Validate() error {
	switch k {
	case BatchNorm, InstanceNorm:
		return nil
	default:
		return fmt.Errorf("%w: %q (want bn or in)", ErrUnknownNorm, string(k))
	}
}

// ActKind selects the activation of a conv unit.
type ActKind string

// Activation kinds.
const (
	ReLU  ActKind = "relu"
	Leaky ActKind = "leaky" // negative slope 0.2
)

// Validate reports an ErrUnknownAct for anything but relu and leaky.
func (k ActKind) Validate() error {
	switch k {
	case ReLU, Leaky:
		return nil
	default:
		return fmt.Errorf("%w: %q (want relu or leaky)", ErrUnknownAct, string(k))
	}
}
