package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/wardbot/internal/config"
	"github.com/KaramelBytes/wardbot/internal/query"
	"github.com/KaramelBytes/wardbot/internal/render"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	cfgFile    string
	debug      bool
	flagFormat string

	// Loaded configuration
	cfg *cfgpkg.Global
	// Debug logger; a no-op unless --debug is set
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "wardbot",
	Short: "wardbot: ask questions about hospital occupancy CSVs",
	Long: `wardbot loads a hospital occupancy CSV and an optional predictions CSV,
computes simple aggregates and answers keyword questions such as
"average beds", "most occupied hospital" or a date (YYYY-MM-DD).`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.wardbot/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging to stderr")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "", "output format: plain|term|html (overrides config)")
}

func loadConfig() {
	l, err := newLogger(debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to build logger: %v\n", err)
	} else {
		logger = l
	}

	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Defaults()
	}
	cfg = c
	logger.Debug("config loaded",
		zap.String("config_file", cfgFile),
		zap.String("output_format", cfg.OutputFormat),
		zap.String("workspaces_dir", cfg.WorkspacesDir))
}

func newLogger(debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}
	lc := zap.NewDevelopmentConfig()
	lc.OutputPaths = []string{"stderr"}
	lc.ErrorOutputPaths = []string{"stderr"}
	return lc.Build()
}

// settings returns the loaded config, or defaults when none was loaded.
func settings() *cfgpkg.Global {
	if cfg == nil {
		return cfgpkg.Defaults()
	}
	return cfg
}

func outputFormat() (render.Format, error) {
	if flagFormat != "" {
		return render.ParseFormat(flagFormat)
	}
	return render.ParseFormat(settings().OutputFormat)
}

func engineColumns() query.Columns {
	c := settings()
	cols := query.DefaultColumns()
	if c.DateColumn != "" {
		cols.Date = c.DateColumn
	}
	if c.OccupiedColumn != "" {
		cols.Occupied = c.OccupiedColumn
	}
	if c.PredictedColumn != "" {
		cols.Predicted = c.PredictedColumn
	}
	if c.HospitalPrefix != "" {
		cols.HospitalPrefix = c.HospitalPrefix
	}
	if c.ProvincePrefix != "" {
		cols.ProvincePrefix = c.ProvincePrefix
	}
	return cols
}
