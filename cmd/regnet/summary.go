package main

import (
	"fmt"
	"strconv"

	"github.com/born-ml/regnet/internal/regnet"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newSummaryCmd(a *app) *cobra.Command {
	var height, width int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the stages of the configured network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config(cmd, regnet.DefaultConfig())
			if err != nil {
				return err
			}
			net, err := regnet.New(cfg, a.backend())
			if err != nil {
				return err
			}

			data := make([][]string, 0, 10)
			for _, s := range net.Stages(height, width) {
				data = append(data, []string{
					s.Name,
					strconv.Itoa(s.InChannels),
					strconv.Itoa(s.OutChannels),
					strconv.Itoa(s.Params),
					fmt.Sprint(s.OutShape),
				})
			}

			out := cmd.OutOrStdout()
			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"STAGE", "IN", "OUT", "PARAMS", "OUTPUT"})
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetBorder(false)
			table.AppendBulk(data)
			table.Render()

			_, err = fmt.Fprintf(out, "pad=%s norm=%s act=%s conv=%s params=%d\n",
				cfg.Pad, cfg.Norm, cfg.Act, cfg.Conv, net.NumParameters())
			return err
		},
	}

	cmd.Flags().IntVar(&height, "height", 256, "Input height for output shapes")
	cmd.Flags().IntVar(&width, "width", 512, "Input width for output shapes")
	return cmd
}
