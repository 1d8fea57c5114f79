package cmd

import (
	"fmt"

	"github.com/KaramelBytes/wardbot/internal/dataset"
	"github.com/spf13/cobra"
)

var (
	loadWorkspace string
)

var loadCmd = &cobra.Command{
	Use:   "load <hospital|predictions> <file>",
	Short: "Bind a CSV file to a workspace dataset slot",
	Long: `Bind a CSV file to the hospital or predictions slot of a workspace.
Loading replaces whatever file the slot held before; rows are never merged.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := dataset.ParseSlot(args[0])
		if err != nil {
			return err
		}
		ws, err := requireWorkspace(loadWorkspace)
		if err != nil {
			return err
		}
		d, err := ws.SetSource(slot, args[1])
		if err != nil {
			return fmt.Errorf("load %s CSV: %w", slot, err)
		}
		if err := ws.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), loadedMessage(slot, d))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().StringVarP(&loadWorkspace, "workspace", "w", "", "workspace name")
}
