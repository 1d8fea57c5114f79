package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// CSV layout
	DateColumn      string `mapstructure:"date_column" yaml:"date_column"`
	OccupiedColumn  string `mapstructure:"occupied_column" yaml:"occupied_column"`
	PredictedColumn string `mapstructure:"predicted_column" yaml:"predicted_column"`
	HospitalPrefix  string `mapstructure:"hospital_prefix" yaml:"hospital_prefix"`
	ProvincePrefix  string `mapstructure:"province_prefix" yaml:"province_prefix"`

	// Output
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`

	// Workspaces and history
	WorkspacesDir  string `mapstructure:"workspaces_dir" yaml:"workspaces_dir"`
	HistoryEnabled bool   `mapstructure:"history_enabled" yaml:"history_enabled"`
	HistoryLimit   int    `mapstructure:"history_limit" yaml:"history_limit"`
}

// Defaults returns the built-in settings. WorkspacesDir is left empty and
// resolved by Load.
func Defaults() *Global {
	return &Global{
		DateColumn:      "date",
		OccupiedColumn:  "occupied_beds_ward",
		PredictedColumn: "beds_available_ward",
		HospitalPrefix:  "hospital_",
		ProvincePrefix:  "province_",
		OutputFormat:    "term",
		HistoryEnabled:  true,
		HistoryLimit:    20,
	}
}

// Dir returns ~/.wardbot.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".wardbot"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.wardbot/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("WARDBOT")
	v.AutomaticEnv()

	// Defaults
	d := Defaults()
	v.SetDefault("date_column", d.DateColumn)
	v.SetDefault("occupied_column", d.OccupiedColumn)
	v.SetDefault("predicted_column", d.PredictedColumn)
	v.SetDefault("hospital_prefix", d.HospitalPrefix)
	v.SetDefault("province_prefix", d.ProvincePrefix)
	v.SetDefault("output_format", d.OutputFormat)
	v.SetDefault("workspaces_dir", "")
	v.SetDefault("history_enabled", d.HistoryEnabled)
	v.SetDefault("history_limit", d.HistoryLimit)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	// Resolve workspaces_dir default: ~/.wardbot/workspaces
	if c.WorkspacesDir == "" {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		c.WorkspacesDir = filepath.Join(dir, "workspaces")
	}
	return &c, nil
}
