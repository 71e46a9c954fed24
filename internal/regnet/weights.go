package regnet

import (
	"fmt"

	"github.com/born-ml/regnet/internal/serialization"
	"github.com/born-ml/regnet/internal/tensor"
)

// ConfigMetadataKey is the SafeTensors metadata entry holding the YAML
// config of the network that wrote the file.
const ConfigMetadataKey = "regnet.config"

// SaveWeights writes the network's state dictionary to a SafeTensors file,
// with its config in the metadata.
func SaveWeights[B tensor.Backend](path string, r *RegNet[B]) error {
	cfg, err := r.cfg.Marshal()
	if err != nil {
		return err
	}
	metadata := map[string]string{
		"format":          "pt",
		ConfigMetadataKey: string(cfg),
	}
	if err := serialization.WriteSafeTensors(path, r.StateDict(), metadata); err != nil {
		return fmt.Errorf("save weights: %w", err)
	}
	return nil
}

// LoadWeights reads a SafeTensors file into the network and returns the
// file's metadata. Files exported from PyTorch load as long as their names
// follow the state dictionary layout.
func LoadWeights[B tensor.Backend](path string, r *RegNet[B]) (map[string]string, error) {
	stateDict, metadata, err := serialization.ReadSafeTensors(path, r.backend.Device())
	if err != nil {
		return nil, fmt.Errorf("load weights: %w", err)
	}
	if err := r.LoadStateDict(stateDict); err != nil {
		return nil, fmt.Errorf("load weights %s: %w", path, err)
	}
	return metadata, nil
}

// ConfigFromMetadata returns the config stored by SaveWeights. ok is false
// when the metadata has none.
func ConfigFromMetadata(metadata map[string]string) (cfg Config, ok bool, err error) {
	data, ok := metadata[ConfigMetadataKey]
	if !ok {
		return Config{}, false, nil
	}
	cfg, err = ParseConfig([]byte(data))
	if err != nil {
		return Config{}, true, err
	}
	return cfg, true, nil
}

// WeightsConfig reads the config stored in a weights file, if any.
func WeightsConfig(path string) (Config, bool, error) {
	r, err := serialization.Open(path)
	if err != nil {
		return Config{}, false, err
	}
	defer func() {
		_ = r.Close()
	}()
	return ConfigFromMetadata(r.Metadata())
}
