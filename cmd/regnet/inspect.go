package main

import (
	"fmt"
	"strings"

	"github.com/born-ml/regnet/internal/serialization"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <weights.safetensors>",
		Short: "List the tensors of a weights file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := serialization.Open(args[0])
			if err != nil {
				return err
			}
			defer func() {
				_ = r.Close()
			}()

			names := r.TensorNames()
			data := make([][]string, 0, len(names))
			for _, name := range names {
				info, err := r.TensorInfo(name)
				if err != nil {
					return err
				}
				data = append(data, []string{name, string(info.DType), fmt.Sprint(info.Shape)})
			}

			out := cmd.OutOrStdout()
			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"NAME", "DTYPE", "SHAPE"})
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetBorder(false)
			table.AppendBulk(data)
			table.Render()

			if _, err := fmt.Fprintf(out, "%d tensors\n", len(names)); err != nil {
				return err
			}
			for key, value := range r.Metadata() {
				if _, err := fmt.Fprintf(out, "%s:\n  %s\n", key, strings.ReplaceAll(strings.TrimSpace(value), "\n", "\n  ")); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
