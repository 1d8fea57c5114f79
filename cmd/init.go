package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/wardbot/internal/utils"
	"github.com/KaramelBytes/wardbot/internal/workspace"
	"github.com/spf13/cobra"
)

var (
	initDescription string
)

var initCmd = &cobra.Command{
	Use:   "init <workspace-name>",
	Short: "Initialize a new workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		root, err := defaultWorkspacesDir()
		if err != nil {
			return err
		}
		wsDir := filepath.Join(root, name)
		// Refuse to overwrite an existing workspace.
		if info, err := os.Stat(wsDir); err == nil && info.IsDir() {
			if _, err := os.Stat(filepath.Join(wsDir, workspace.FileName)); err == nil {
				return fmt.Errorf("workspace already exists at %s", wsDir)
			}
			entries, err := os.ReadDir(wsDir)
			if err != nil {
				return fmt.Errorf("inspect workspace directory: %w", err)
			}
			if len(entries) > 0 {
				return fmt.Errorf("directory %s already exists and is not empty; refusing to initialize workspace", wsDir)
			}
		} else if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("stat workspace directory: %w", err)
		}
		if err := utils.EnsureDir(wsDir); err != nil {
			return err
		}
		ws := workspace.New(name, initDescription, wsDir)
		if err := ws.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Workspace initialized: %s\n", wsDir)
		return nil
	},
}

func defaultWorkspacesDir() (string, error) {
	dir := settings().WorkspacesDir
	if dir == "" {
		dir = "~/.wardbot/workspaces"
	}
	dir, err := utils.ExpandHome(dir)
	if err != nil {
		return "", err
	}
	if err := utils.EnsureDir(dir); err != nil {
		return "", err
	}
	return dir, nil
}

func resolveWorkspaceDirByName(name string) (string, error) {
	if name == "" {
		return "", errors.New("workspace name is required")
	}
	root, err := defaultWorkspacesDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, name), nil
}

// lookupWorkspaceDir resolves name, or, when name is empty, walks up from the
// working directory for a workspace.json. An empty result means no workspace.
func lookupWorkspaceDir(name string) (string, error) {
	if name != "" {
		return resolveWorkspaceDirByName(name)
	}
	dir, err := utils.FindRoot("", workspace.FileName)
	if err != nil {
		return "", nil
	}
	return dir, nil
}

// requireWorkspace loads the named or enclosing workspace, failing if none.
func requireWorkspace(name string) (*workspace.Workspace, error) {
	dir, err := lookupWorkspaceDir(name)
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return nil, errors.New("--workspace is required (or run inside a workspace directory)")
	}
	return workspace.Load(dir)
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVarP(&initDescription, "desc", "d", "", "workspace description")
}
