package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	DBPath string `toml:"db_path"`
	// logging
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`
	// display
	HighlightColor string `toml:"highlight_color"`
	WeightUnit     string `toml:"weight_unit"`
}

// Defaults returns the configuration used when no file exists, rooted in
// the user config dir.
func Defaults() (*Config, error) {
	dir, err := appDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		DBPath:         filepath.Join(dir, "flexr.db"),
		LogLevel:       "info",
		LogFile:        filepath.Join(dir, "flexr.log"),
		HighlightColor: "#FF6B9D",
		WeightUnit:     "kg",
	}, nil
}

// DefaultPath returns ~/.config/flexr/config.toml
func DefaultPath() (string, error) {
	dir, err := appDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func appDir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(cfg, "flexr"), nil
}

// Load reads the TOML file at path over the defaults. A missing file is not
// an error.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.DBPath = expandHome(cfg.DBPath)
	cfg.LogFile = expandHome(cfg.LogFile)
	return cfg, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.WeightUnit) {
	case "kg", "lb":
	default:
		return fmt.Errorf("unknown weight_unit %q", c.WeightUnit)
	}
	if c.DBPath == "" {
		return errors.New("db_path is empty")
	}
	if c.HighlightColor != "" && !strings.HasPrefix(c.HighlightColor, "#") {
		return fmt.Errorf("highlight_color %q is not a hex color", c.HighlightColor)
	}
	return nil
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
