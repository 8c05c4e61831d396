package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var extractorsCmd = &cobra.Command{
	Use:   "extractors",
	Short: "List registered extractors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		type row struct {
			Name    string `json:"name"`
			Enabled bool   `json:"enabled"`
		}

		var rows []row
		for _, e := range registry.List() {
			rows = append(rows, row{Name: e.Name(), Enabled: registry.Enabled(e.Name())})
		}

		if jsonOutput() {
			return printJSON(cmd.OutOrStdout(), rows)
		}
		for _, r := range rows {
			state := "enabled"
			if !r.Enabled {
				state = "disabled"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", r.Name, state)
		}
		return nil
	},
}
