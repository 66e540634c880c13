package config

import (
	"os"
	"path/filepath"
)

// EnvConfigDir overrides the directory holding the config file and the
// stored token records.
const EnvConfigDir = "GAUTH_CONFIG_DIR"

// Dir resolves the gauth directory without touching the filesystem, so the
// same environment always addresses the same records whether or not they
// exist yet. Resolution order: GAUTH_CONFIG_DIR, the platform config dir,
// then ~/.gauth.
func Dir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	if base, err := os.UserConfigDir(); err == nil {
		return filepath.Join(base, "gauth")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".gauth")
	}
	return ".gauth"
}

// DefaultConfigPath is where Load looks when --config is not given.
func DefaultConfigPath() string {
	return filepath.Join(Dir(), "config.yaml")
}
