package regnet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 3, cfg.InChannels)
	assert.Equal(t, 3, cfg.OutChannels)
	assert.Equal(t, 64, cfg.BaseFilters)
	assert.Equal(t, "pano", cfg.Pad)
	assert.Equal(t, InstanceNorm, cfg.Norm)
	assert.Equal(t, ReLU, cfg.Act)
	assert.Equal(t, Conv2Kind, cfg.Conv)
	assert.NoError(t, cfg.Validate())
}

func TestParseConfig_OverridesDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("out_channels: 1\nnf: 16\npad: reflect\n"))
	require.NoError(t, err)

	want := DefaultConfig()
	want.OutChannels = 1
	want.BaseFilters = 16
	want.Pad = "reflect"
	assert.Equal(t, want, cfg)
}

func TestParseConfig_Empty(t *testing.T) {
	cfg, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParseConfig_Errors(t *testing.T) {
	_, err := ParseConfig([]byte("filters: 8\n"))
	assert.Error(t, err, "unknown field")

	_, err = ParseConfig([]byte("nf: [1, 2]\n"))
	assert.Error(t, err)

	_, err = ParseConfig([]byte("norm: group\n"))
	assert.ErrorIs(t, err, ErrUnknownNorm)

	_, err = ParseConfig([]byte("conv: conv9\nact: gelu\n"))
	assert.ErrorIs(t, err, ErrUnknownConv)
	assert.ErrorIs(t, err, ErrUnknownAct)
}

func TestConfig_MarshalRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Norm = BatchNorm
	cfg.Pad = "zeros"

	data, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "nf: 64")

	got, err := ParseConfig(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regnet.yaml")
	require.NoError(t, os.WriteFile(path, []byte("in_channels: 1\nact: leaky\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.InChannels)
	assert.Equal(t, Leaky, cfg.Act)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_PadPolicy(t *testing.T) {
	cfg := DefaultConfig()
	policy, err := cfg.PadPolicy()
	require.NoError(t, err)
	assert.True(t, policy.Panoramic)

	cfg.Pad = "circular"
	policy, err = cfg.PadPolicy()
	require.NoError(t, err)
	assert.False(t, policy.Panoramic)
	assert.Equal(t, "circular", policy.String())
}
