package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KaramelBytes/wardbot/internal/history"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	histWorkspace string
	histLimit     int
	histStats     bool
	histClear     bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show questions asked in a workspace",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		ws, err := requireWorkspace(histWorkspace)
		if err != nil {
			return err
		}
		h, err := history.Open(ws.HistoryPath())
		if err != nil {
			return err
		}
		defer h.Close()

		if histClear {
			if err := h.Clear(); err != nil {
				return fmt.Errorf("clear history: %w", err)
			}
			fmt.Fprintf(out, "✓ Cleared history for %s\n", ws.Name)
			return nil
		}
		if histStats {
			counts, err := h.CountByTopic()
			if err != nil {
				return err
			}
			topics := make([]string, 0, len(counts))
			for t := range counts {
				topics = append(topics, t)
			}
			sort.Strings(topics)
			for _, t := range topics {
				fmt.Fprintf(out, "- %s: %d\n", t, counts[t])
			}
			return nil
		}

		limit := histLimit
		if limit <= 0 {
			limit = settings().HistoryLimit
		}
		entries, err := h.Recent(limit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(out, "(no history)")
			return nil
		}
		for _, e := range entries {
			first, _, _ := strings.Cut(e.Answer, "\n")
			fmt.Fprintf(out, "- [%s] %s → %s\n", humanize.Time(e.CreatedAt), e.Question, first)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVarP(&histWorkspace, "workspace", "w", "", "workspace name")
	historyCmd.Flags().IntVarP(&histLimit, "limit", "n", 0, "number of entries to show (default from config)")
	historyCmd.Flags().BoolVar(&histStats, "stats", false, "count questions per answered topic")
	historyCmd.Flags().BoolVar(&histClear, "clear", false, "delete all history entries")
}
