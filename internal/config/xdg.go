// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// AppName names the config and data subdirectories.
const AppName = "tunestat"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := homedir.Dir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := homedir.Dir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), AppName, "config.toml")
}

// DefaultDatasetPath returns the dataset used when none is configured.
func DefaultDatasetPath() string {
	return filepath.Join(XDGDataHome(), AppName, "songs.csv")
}

// ExpandPath resolves a leading ~ in user-supplied paths.
func ExpandPath(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}
