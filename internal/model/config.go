package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// BackendConfig selects and configures the persistence backend.
type BackendConfig struct {
	// Mode is "remote" (hosted REST backend) or "local" (SQLite file).
	Mode string `mapstructure:"mode" yaml:"mode"`

	// URL is the root URL of the hosted backend (remote mode).
	URL string `mapstructure:"url" yaml:"url"`

	// AnonKey is the public API key sent with every remote request.
	AnonKey string `mapstructure:"anon_key" yaml:"anon_key"`

	// DBPath is the SQLite database path (local mode).
	DBPath string `mapstructure:"db_path" yaml:"db_path"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme              string `mapstructure:"theme" yaml:"theme"`
	RefreshIntervalSec int    `mapstructure:"refresh_interval_sec" yaml:"refresh_interval_sec"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Backend BackendConfig `mapstructure:"backend" yaml:"backend"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/habitchain/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "habitchain", "config.yaml")
}

// DefaultDBPath returns the default local SQLite database path.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "habitchain.db")
	}
	return filepath.Join(home, ".config", "habitchain", "habitchain.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Backend: BackendConfig{
			Mode:   "local",
			DBPath: DefaultDBPath(),
		},
		Display: DisplayConfig{
			Theme:              "default",
			RefreshIntervalSec: 120,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// Environment variables HABITCHAIN_URL and HABITCHAIN_ANON_KEY override the
// remote backend settings. If the file does not exist, defaults are returned.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("backend.mode", "local")
	v.SetDefault("backend.db_path", DefaultDBPath())
	v.SetDefault("display.theme", "default")
	v.SetDefault("display.refresh_interval_sec", 120)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return applyEnv(defaultAppConfig()), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return applyEnv(defaultAppConfig()), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return applyEnv(cfg), nil
}

// applyEnv overlays environment overrides onto cfg. Setting a URL via the
// environment also switches the backend to remote mode.
func applyEnv(cfg *AppConfig) *AppConfig {
	if url := os.Getenv("HABITCHAIN_URL"); url != "" {
		cfg.Backend.URL = url
		cfg.Backend.Mode = "remote"
	}
	if key := os.Getenv("HABITCHAIN_ANON_KEY"); key != "" {
		cfg.Backend.AnonKey = key
	}
	return cfg
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("backend", cfg.Backend)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
