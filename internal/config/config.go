// Package config loads and persists proforma's two configuration surfaces:
// the app config under the user config dir, and the assumptions files that
// describe a business plan.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all proforma preferences.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Server     ServerConfig     `toml:"server"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	// AssumptionsPath is the default plan file used when --file is not
	// given. Relative paths resolve against the working directory.
	AssumptionsPath string `toml:"assumptions_path"`
	// SweepSteps is the default sample count for sensitivity sweeps.
	SweepSteps int `toml:"sweep_steps"`
}

// AppearanceConfig holds theme and formatting settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
	// EUNumbers switches exports to European number formatting (1.234,56).
	EUNumbers bool `toml:"eu_numbers"`
}

// ServerConfig holds `proforma serve` settings.
type ServerConfig struct {
	ListenAddr string `toml:"listen_addr"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			AssumptionsPath: "proforma.toml",
			SweepSteps:      9,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Server: ServerConfig{
			ListenAddr: "127.0.0.1:8712",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "proforma")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "proforma")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// AssumptionsPath returns the plan file path from the PROFORMA_ASSUMPTIONS
// env var or the config, in that order.
func AssumptionsPath(cfg Config) string {
	if p := os.Getenv("PROFORMA_ASSUMPTIONS"); p != "" {
		return p
	}
	if cfg.General.AssumptionsPath != "" {
		return cfg.General.AssumptionsPath
	}
	return "proforma.toml"
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
