package main

import (
	"fmt"

	"github.com/born-ml/regnet/internal/backend/cpu"
	"github.com/born-ml/regnet/internal/regnet"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app holds global flags and shared state of one CLI invocation.
type app struct {
	configPath string
	debug      bool
	workers    int

	// Config overrides, applied when the flag is set.
	nf   int
	pad  string
	norm string
	act  string
	conv string

	logger *zap.Logger
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "regnet",
		Short: "Panoramic U-Net for image-to-image regression",
		Long: `regnet runs a U-Net with skip connections on images.

Its default padding policy wraps the width axis and replicates the height
axis, which keeps equirectangular panoramas seamless across the left and
right edges.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger != nil {
				return nil
			}
			config := zap.NewProductionConfig()
			if a.debug {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML network config (default: built-in)")
	flags.BoolVar(&a.debug, "debug", false, "Enable debug logging")
	flags.IntVar(&a.workers, "workers", 0, "Goroutines per tensor op (default: one per CPU)")
	flags.IntVar(&a.nf, "nf", 0, "Override base filters")
	flags.StringVar(&a.pad, "pad", "", "Override pad mode (pano, zeros, reflect, replicate, circular)")
	flags.StringVar(&a.norm, "norm", "", "Override norm (in, bn)")
	flags.StringVar(&a.act, "act", "", "Override activation (relu, leaky)")
	flags.StringVar(&a.conv, "conv", "", "Override conv block (conv1, conv2)")

	root.AddCommand(
		newVersionCmd(),
		newSummaryCmd(a),
		newInitCmd(a),
		newInspectCmd(a),
		newInferCmd(a),
	)
	return root
}

// backend returns a CPU backend honoring --workers.
func (a *app) backend() *cpu.CPUBackend {
	if a.workers > 0 {
		return cpu.New(cpu.WithWorkers(a.workers))
	}
	return cpu.New()
}

// config resolves the network config: base (the --config file, or
// fallback when none is given) plus flag overrides.
func (a *app) config(cmd *cobra.Command, fallback regnet.Config) (regnet.Config, error) {
	cfg := fallback
	if a.configPath != "" {
		var err error
		if cfg, err = regnet.LoadConfig(a.configPath); err != nil {
			return regnet.Config{}, err
		}
		a.logger.Debug("Loaded config", zap.String("path", a.configPath))
	}

	flags := cmd.Flags()
	if flags.Changed("nf") {
		cfg.BaseFilters = a.nf
	}
	if flags.Changed("pad") {
		cfg.Pad = a.pad
	}
	if flags.Changed("norm") {
		cfg.Norm = regnet.NormKind(a.norm)
	}
	if flags.Changed("act") {
		cfg.Act = regnet.ActKind(a.act)
	}
	if flags.Changed("conv") {
		cfg.Conv = regnet.ConvKind(a.conv)
	}

	if err := cfg.Validate(); err != nil {
		return regnet.Config{}, err
	}
	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "regnet %s\n", version)
			return err
		},
	}
}
