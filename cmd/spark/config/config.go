package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Theme names accepted in the config file and the theme subcommand.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Config holds user preferences
type Config struct {
	Theme      string `json:"theme"`       // "light" or "dark"
	BackendURL string `json:"backend_url"` // career analysis backend
	UserID     string `json:"user_id"`     // identifier sent with quiz/analysis calls
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Theme:      ThemeDark,
		BackendURL: "http://localhost:3001",
		UserID:     "uuid001",
	}
}

// Dir returns the directory where config is stored
func Dir() (string, error) {
	// Prefer project-local .careerspark directory if present or creatable
	if cwd, err := os.Getwd(); err == nil {
		localDir := filepath.Join(cwd, ".careerspark")
		if stat, err := os.Stat(localDir); (err == nil && stat.IsDir()) || os.IsNotExist(err) {
			return localDir, nil
		}
	}

	// Fallback to home-level config
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".careerspark"), nil
}

// File returns the full path to the config file
func File() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the configuration from disk
func Load() (Config, error) {
	path, err := File()
	if err != nil {
		return DefaultConfig(), err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}
	if cfg.Theme != ThemeLight && cfg.Theme != ThemeDark {
		cfg.Theme = ThemeDark
	}

	return cfg, nil
}

// Save writes the configuration to disk
func Save(cfg Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := File()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
