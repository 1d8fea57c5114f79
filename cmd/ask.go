package cmd

import (
	"errors"
	"strings"

	"github.com/KaramelBytes/wardbot/internal/query"
	"github.com/spf13/cobra"
)

var (
	askWorkspace   string
	askHospital    string
	askPredictions string
	askPreset      int
)

var askCmd = &cobra.Command{
	Use:   "ask [question...]",
	Short: "Answer one question about the loaded datasets",
	Example: `  wardbot ask --hospital hospital.csv "average beds"
  wardbot ask -w ward7 --preset 2
  wardbot ask --hospital h.csv --predictions p.csv 2024-03-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.Join(args, " ")
		if askPreset > 0 {
			q, err := query.Preset(askPreset)
			if err != nil {
				return err
			}
			question = q
		}
		if strings.TrimSpace(question) == "" {
			return errors.New("a question is required (or use --preset)")
		}
		s, err := openSession(cmd.OutOrStdout(), cmd.ErrOrStderr(), askWorkspace, askHospital, askPredictions)
		if err != nil {
			return err
		}
		defer s.Close()
		s.ask(question)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askWorkspace, "workspace", "w", "", "workspace whose sources to load")
	askCmd.Flags().StringVar(&askHospital, "hospital", "", "hospital occupancy CSV (overrides the workspace source)")
	askCmd.Flags().StringVar(&askPredictions, "predictions", "", "predictions CSV (overrides the workspace source)")
	askCmd.Flags().IntVar(&askPreset, "preset", 0, "ask preset question N (see 'wardbot presets')")
}
