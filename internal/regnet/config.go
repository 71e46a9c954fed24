package regnet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/regnet/internal/nn"
	"gopkg.in/yaml.v3"
)

// Config describes a RegNet.
//
// Example YAML:
//
//	in_channels: 3
//	out_channels: 1
//	nf: 32
//	pad: pano
//	norm: in
//	act: relu
//	conv: conv2
type Config struct {
	InChannels  int      `yaml:"in_channels"`
	OutChannels int      `yaml:"out_channels"`
	BaseFilters int      `yaml:"nf"` // channels of the first stage
	Pad         string   `yaml:"pad"`
	Norm        NormKind `yaml:"norm"`
	Act         ActKind  `yaml:"act"`
	Conv        ConvKind `yaml:"conv"`
}

// DefaultConfig returns the reference network: 3 -> 3 channels, 64 base
// filters, panoramic padding, instance norm, ReLU, conv2 blocks.
func DefaultConfig() Config {
	return Config{
		InChannels:  3,
		OutChannels: 3,
		BaseFilters: 64,
		Pad:         nn.PanoramicName,
		Norm:        InstanceNorm,
		Act:         ReLU,
		Conv:        Conv2Kind,
	}
}

// LoadConfig reads a YAML config file. Omitted keys keep their
// DefaultConfig value; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	//nolint:gosec // G304: config path comes from the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML on top of DefaultConfig and validates the
// result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Validate checks channel counts and every kind name.
func (c Config) Validate() error {
	if c.InChannels <= 0 || c.OutChannels <= 0 || c.BaseFilters <= 0 {
		return fmt.Errorf("%w: in_channels=%d, out_channels=%d, nf=%d (must be > 0)",
			ErrInvalidConfig, c.InChannels, c.OutChannels, c.BaseFilters)
	}
	if _, err := c.PadPolicy(); err != nil {
		return err
	}
	return errors.Join(c.Conv.Validate(), c.Norm.Validate(), c.Act.Validate())
}

// PadPolicy parses Pad.
func (c Config) PadPolicy() (nn.PadPolicy, error) {
	policy, err := nn.ParsePadPolicy(c.Pad)
	if err != nil {
		return nn.PadPolicy{}, fmt.Errorf("%w: %q (want pano, zeros, reflect, replicate or circular)", ErrUnknownPad, c.Pad)
	}
	return policy, nil
}

// BlockOptions returns the per-block settings derived from c.
func (c Config) BlockOptions() (BlockOptions, error) {
	if err := c.Validate(); err != nil {
		return BlockOptions{}, err
	}
	policy, _ := c.PadPolicy()
	return BlockOptions{Conv: c.Conv, Norm: c.Norm, Act: c.Act, Pad: policy}, nil
}
