package main

import (
	"errors"

	"github.com/born-ml/regnet/internal/regnet"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newInitCmd(a *app) *cobra.Command {
	var out string
	var seed uint64

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write freshly initialized weights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return errors.New("--out is required")
			}
			cfg, err := a.config(cmd, regnet.DefaultConfig())
			if err != nil {
				return err
			}

			var opts []regnet.Option
			if cmd.Flags().Changed("seed") {
				opts = append(opts, regnet.WithSeed(seed))
			}
			net, err := regnet.New(cfg, a.backend(), opts...)
			if err != nil {
				return err
			}
			if err := regnet.SaveWeights(out, net); err != nil {
				return err
			}

			a.logger.Info("Wrote weights",
				zap.String("path", out),
				zap.Int("params", net.NumParameters()),
				zap.Int("nf", cfg.BaseFilters))
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output SafeTensors file (required)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Initialization seed (default: random)")
	return cmd
}
