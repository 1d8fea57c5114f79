package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/wardbot/internal/workspace"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	listSources   bool
	listWorkspace string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List workspaces, or the sources of one workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if !listSources {
			return listAllWorkspaces(cmd)
		}
		ws, err := requireWorkspace(listWorkspace)
		if err != nil {
			return err
		}
		if len(ws.Sources) == 0 {
			fmt.Fprintln(out, "(no sources)")
			return nil
		}
		for _, slot := range ws.Slots() {
			src := ws.Sources[slot]
			fmt.Fprintf(out, "- %s: %s (%s rows, loaded %s) %s\n",
				slot, src.Name, humanize.Comma(int64(src.Rows)), humanize.Time(src.LoadedAt), src.Path)
		}
		return nil
	},
}

func listAllWorkspaces(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	root, err := defaultWorkspacesDir()
	if err != nil {
		return err
	}
	dirs, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	found := false
	for _, e := range dirs {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(root, e.Name(), workspace.FileName)); err == nil {
			fmt.Fprintf(out, "- %s\n", e.Name())
			found = true
		}
	}
	if !found {
		fmt.Fprintln(out, "(no workspaces)")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listSources, "sources", false, "list the dataset sources of a workspace")
	listCmd.Flags().StringVarP(&listWorkspace, "workspace", "w", "", "workspace name for --sources")
}
