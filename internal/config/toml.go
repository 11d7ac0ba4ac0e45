// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Data    DataConfig    `toml:"data"`
	Explore ExploreConfig `toml:"explore"`
}

// DataConfig maps source file settings.
type DataConfig struct {
	Dataset *string `toml:"dataset"`
	History *string `toml:"history"`
}

// ExploreConfig maps view defaults.
type ExploreConfig struct {
	Top       *int      `toml:"top"`
	From      *int      `toml:"from"`
	To        *int      `toml:"to"`
	Format    *string   `toml:"format"`
	CorrAttrs *[]string `toml:"corr-attrs"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
