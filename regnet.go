// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package regnet

import (
	"math/rand/v2"

	"github.com/born-ml/regnet/internal/regnet"
	"github.com/born-ml/regnet/tensor"
)

// Construction errors.
var (
	ErrUnknownConv   = regnet.ErrUnknownConv
	ErrUnknownNorm   = regnet.ErrUnknownNorm
	ErrUnknownAct    = regnet.ErrUnknownAct
	ErrUnknownPad    = regnet.ErrUnknownPad
	ErrInvalidConfig = regnet.ErrInvalidConfig
)

// ErrInputTooSmall is returned by Config.CheckInputSize.
var ErrInputTooSmall = regnet.ErrInputTooSmall

// ConvKind selects the conv block of iconv, down and up stages.
type ConvKind = regnet.ConvKind

// NormKind selects the normalization of a conv unit.
type NormKind = regnet.NormKind

// ActKind selects the activation of a conv unit.
type ActKind = regnet.ActKind

// Kind constants.
const (
	Conv1Kind    ConvKind = regnet.Conv1Kind
	Conv2Kind    ConvKind = regnet.Conv2Kind
	BatchNorm    NormKind = regnet.BatchNorm
	InstanceNorm NormKind = regnet.InstanceNorm
	ReLU         ActKind  = regnet.ReLU
	Leaky        ActKind  = regnet.Leaky
)

// MinInputSize is the smallest accepted input height and width.
const MinInputSize = regnet.MinInputSize

// Config describes a network.
type Config = regnet.Config

// DefaultConfig returns in_c=3, out_c=3, nf=64, pano padding, instance
// norm, ReLU and conv2 blocks.
func DefaultConfig() Config {
	return regnet.DefaultConfig()
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	return regnet.LoadConfig(path)
}

// ParseConfig decodes YAML on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	return regnet.ParseConfig(data)
}

// RegNet is the panoramic U-Net.
type RegNet[B tensor.Backend] = regnet.RegNet[B]

// StageInfo summarizes one stage of a network.
type StageInfo = regnet.StageInfo

// Option configures New.
type Option = regnet.Option

// WithSeed makes weight initialization reproducible.
func WithSeed(seed uint64) Option {
	return regnet.WithSeed(seed)
}

// WithRand draws initial weights from rng.
func WithRand(rng *rand.Rand) Option {
	return regnet.WithRand(rng)
}

// New builds a network. Unknown kind names and non-positive channel counts
// are reported before any weight is allocated.
//
// Example:
//
//	backend := cpu.New()
//	net, err := regnet.New(regnet.DefaultConfig(), backend, regnet.WithSeed(1))
func New[B tensor.Backend](cfg Config, backend B, opts ...Option) (*RegNet[B], error) {
	return regnet.New(cfg, backend, opts...)
}

// SaveWeights writes the network's weights and config to a SafeTensors file.
func SaveWeights[B tensor.Backend](path string, net *RegNet[B]) error {
	return regnet.SaveWeights(path, net)
}

// LoadWeights reads a SafeTensors file into net and returns its metadata.
func LoadWeights[B tensor.Backend](path string, net *RegNet[B]) (map[string]string, error) {
	return regnet.LoadWeights(path, net)
}

// WeightsConfig returns the config stored in a weights file written by
// SaveWeights. ok is false for files without one.
func WeightsConfig(path string) (cfg Config, ok bool, err error) {
	return regnet.WeightsConfig(path)
}
