package cmd

import (
	"fmt"

	"github.com/KaramelBytes/wardbot/internal/analysis"
	"github.com/KaramelBytes/wardbot/internal/dataset"
	"github.com/KaramelBytes/wardbot/internal/query"
	"github.com/KaramelBytes/wardbot/internal/render"
	"github.com/KaramelBytes/wardbot/internal/utils"
	"github.com/spf13/cobra"
)

var (
	anaWorkspace  string
	anaOutputPath string
	anaTopValues  int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Summarize a hospital CSV: average occupied beds plus column statistics",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		switch {
		case len(args) == 1:
			path = args[0]
		default:
			ws, err := requireWorkspace(anaWorkspace)
			if err != nil {
				return err
			}
			src := ws.Sources[dataset.SlotHospital]
			if src == nil {
				fmt.Fprintln(cmd.OutOrStdout(), query.MsgNoHospitalData)
				return nil
			}
			path = src.Path
		}
		d, err := dataset.LoadFile(path)
		if err != nil {
			return fmt.Errorf("load hospital CSV: %w", err)
		}
		if d.Empty() {
			fmt.Fprintln(cmd.OutOrStdout(), query.MsgNoHospitalData)
			return nil
		}
		format, err := outputFormat()
		if err != nil {
			return err
		}

		cols := engineColumns()
		opt := analysis.DefaultOptions()
		opt.ValueColumn = cols.Occupied
		opt.IndicatorPrefixes = []string{cols.HospitalPrefix, cols.ProvincePrefix}
		if anaTopValues > 0 {
			opt.TopValues = anaTopValues
		}
		rep := analysis.Summarize(d, opt)

		headline := render.Doc{render.L(
			render.T("📊 Average ward beds occupied (total): "),
			render.B(render.Fixed(rep.ValueAverage, 2)),
		)}
		md := rep.Markdown()

		if anaOutputPath != "" {
			body := headline.String() + "\n\n" + md
			if err := utils.SafeWriteFile(anaOutputPath, []byte(body)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote analysis to %s\n", anaOutputPath)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), headline.Render(format))
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprint(cmd.OutOrStdout(), md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaWorkspace, "workspace", "w", "", "analyze the workspace's hospital source")
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the analysis")
	analyzeCmd.Flags().IntVar(&anaTopValues, "top-values", 0, "text values listed per column (default 3)")
}
