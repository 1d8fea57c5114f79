package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/wardbot/internal/config"
	"github.com/KaramelBytes/wardbot/internal/render"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set wardbot configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "date_column: %s\n", c.DateColumn)
		fmt.Fprintf(out, "occupied_column: %s\n", c.OccupiedColumn)
		fmt.Fprintf(out, "predicted_column: %s\n", c.PredictedColumn)
		fmt.Fprintf(out, "hospital_prefix: %s\n", c.HospitalPrefix)
		fmt.Fprintf(out, "province_prefix: %s\n", c.ProvincePrefix)
		fmt.Fprintf(out, "output_format: %s\n", c.OutputFormat)
		if c.WorkspacesDir != "" {
			fmt.Fprintf(out, "workspaces_dir: %s\n", c.WorkspacesDir)
		}
		fmt.Fprintf(out, "history_enabled: %t\n", c.HistoryEnabled)
		fmt.Fprintf(out, "history_limit: %d\n", c.HistoryLimit)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "date_column":
			cfg.DateColumn = val
		case "occupied_column":
			cfg.OccupiedColumn = val
		case "predicted_column":
			cfg.PredictedColumn = val
		case "hospital_prefix":
			cfg.HospitalPrefix = val
		case "province_prefix":
			cfg.ProvincePrefix = val
		case "output_format":
			f, err := render.ParseFormat(val)
			if err != nil {
				return err
			}
			cfg.OutputFormat = string(f)
		case "workspaces_dir":
			cfg.WorkspacesDir = val
		case "history_enabled":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for history_enabled: %w", err)
			}
			cfg.HistoryEnabled = b
		case "history_limit":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for history_limit: %v", val)
			}
			cfg.HistoryLimit = i
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
