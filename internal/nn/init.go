package nn

import (
	"math"
	"math/rand/v2"

	"github.com/born-ml/regnet/internal/tensor"
)

// InitOption configures weight initialization of a layer.
type InitOption func(*initConfig)

type initConfig struct {
	rng *rand.Rand
}

// WithRand draws initial weights from rng instead of the global source,
// making construction reproducible.
func WithRand(rng *rand.Rand) InitOption {
	return func(c *initConfig) {
		c.rng = rng
	}
}

func newInitConfig(opts []InitOption) initConfig {
	var c initConfig
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// KaimingUniform initializes a weight tensor the way PyTorch initializes
// convolution weights (kaiming_uniform_ with a = sqrt(5)):
//
//	U(-1/sqrt(fan_in), 1/sqrt(fan_in))
//
// Parameters:
//   - fanIn: Number of input units (in_channels * kernel_h * kernel_w)
//   - shape: Shape of the weight tensor
//   - rng: Random source, nil for the global one
//   - backend: Backend to use for tensor creation
func KaimingUniform[B tensor.Backend](fanIn int, shape tensor.Shape, rng *rand.Rand, backend B) *tensor.Tensor[B] {
	bound := 1 / math.Sqrt(float64(fanIn))
	return tensor.Rand(shape, -bound, bound, rng, backend)
}
