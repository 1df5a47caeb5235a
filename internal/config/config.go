package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the optional user configuration. A missing file yields defaults;
// a malformed file is an error so typos don't silently revert settings.
type Config struct {
	// DataDir overrides where the task and folder slots are stored.
	DataDir string `yaml:"data_dir"`
	// AccentColor overrides the highlight color of the TUI.
	AccentColor string `yaml:"accent_color"`
	// SidebarOpen controls whether the folder sidebar starts visible.
	// Unset means visible.
	SidebarOpen *bool `yaml:"sidebar_open"`
}

func Default() Config {
	return Config{}
}

// DefaultPath returns the config file location under the user config dir.
func DefaultPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "taskdeck", "config.yaml"), nil
}

// Load reads the config file at path, or the default location if path is
// empty. A nonexistent file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// SidebarVisible resolves the sidebar default.
func (c Config) SidebarVisible() bool {
	if c.SidebarOpen == nil {
		return true
	}
	return *c.SidebarOpen
}
