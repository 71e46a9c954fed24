package main

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/born-ml/regnet/internal/imageio"
	"github.com/born-ml/regnet/internal/regnet"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newInferCmd(a *app) *cobra.Command {
	var weights, in, out string
	var width, height int

	cmd := &cobra.Command{
		Use:   "infer",
		Short: "Run the network on an image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if weights == "" || in == "" || out == "" {
				return errors.New("--weights, --in and --out are required")
			}

			// The config stored with the weights is the base; --config and
			// overrides apply on top.
			base := regnet.DefaultConfig()
			if stored, ok, err := regnet.WeightsConfig(weights); err != nil {
				return err
			} else if ok {
				base = stored
			}
			cfg, err := a.config(cmd, base)
			if err != nil {
				return err
			}

			backend := a.backend()
			net, err := regnet.New(cfg, backend)
			if err != nil {
				return err
			}
			if _, err := regnet.LoadWeights(weights, net); err != nil {
				return err
			}

			img, err := imageio.Load(in)
			if err != nil {
				return err
			}
			if width > 0 || height > 0 {
				img, err = resize(img, width, height)
				if err != nil {
					return err
				}
			}
			b := img.Bounds()
			if err := cfg.CheckInputSize(b.Dy(), b.Dx()); err != nil {
				return fmt.Errorf("image: %w", err)
			}

			x, err := imageio.ToTensor(img, cfg.InChannels, backend)
			if err != nil {
				return err
			}

			a.logger.Debug("Running network",
				zap.String("input", in),
				zap.Any("shape", x.Shape()),
				zap.Int("workers", backend.Workers()))
			start := time.Now()
			y := net.Forward(x)
			elapsed := time.Since(start)

			result, err := imageio.FromTensor(y)
			if err != nil {
				return err
			}
			if err := imageio.Save(out, result); err != nil {
				return err
			}

			a.logger.Info("Wrote output",
				zap.String("path", out),
				zap.Any("shape", y.Shape()),
				zap.Duration("forward", elapsed))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&weights, "weights", "", "SafeTensors weights (required)")
	flags.StringVar(&in, "in", "", "Input image: PNG, JPEG or WebP (required)")
	flags.StringVar(&out, "out", "", "Output PNG (required)")
	flags.IntVar(&width, "width", 0, "Resize input to this width")
	flags.IntVar(&height, "height", 0, "Resize input to this height")
	return cmd
}

// resize scales img; a zero dimension keeps the aspect ratio.
func resize(img image.Image, width, height int) (image.Image, error) {
	b := img.Bounds()
	switch {
	case width == 0:
		width = b.Dx() * height / b.Dy()
	case height == 0:
		height = b.Dy() * width / b.Dx()
	}
	return imageio.Resize(img, width, height)
}
