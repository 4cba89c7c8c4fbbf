package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds process-wide settings, read once from the environment.
type Config struct {
	// Root is the catalog root: the directory holding themes.json and the
	// per-theme directories.
	Root string `env:"IKONOGRAF_ROOT" envDefault:"~/icons"`
	// Workers bounds the hashing pool; 0 means one worker per CPU.
	Workers int `env:"IKONOGRAF_WORKERS" envDefault:"0"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}
	cfg.Root = ExpandHome(cfg.Root)
	return cfg, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
