package cmd

import (
	"fmt"

	"github.com/KaramelBytes/wardbot/internal/query"
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the preset questions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for i, q := range query.Presets {
			fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, q)
		}
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
