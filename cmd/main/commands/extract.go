package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"price-recon-service/internal/modelcode"
)

var matchStrict bool

func init() {
	matchCmd.Flags().BoolVar(&matchStrict, "strict", false, "exact normalized match only")
	rootCmd.AddCommand(extractCmd, matchCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract <product name>...",
	Short: "Prints the model code extracted from each product name.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		t := newTable(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Name", "Model", "Key", "Rule", "Confidence"})
		for _, name := range args {
			code, tag, ok := modelcode.ExtractTagged(name)
			if !ok {
				t.AppendRow(table.Row{name, "-", "", "", ""})
				continue
			}
			_, conf := modelcode.ExtractWithConfidence(name)
			t.AppendRow(table.Row{name, code.Raw, code.Normalized, tag, fmt.Sprintf("%.2f", conf)})
		}
		t.Render()
	},
}

var matchCmd = &cobra.Command{
	Use:   "match <model> <model>",
	Short: "Reports whether two model codes refer to the same product.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), modelcode.Match(args[0], args[1], matchStrict))
	},
}
