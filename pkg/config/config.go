// Package config holds the optional gauth config file and the deterministic
// resolution of the directory it and the token records live in. The config
// file only carries non-secret knobs; the OAuth client credentials always
// come from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

const VersionV1 = "v1"

type Config struct {
	Version string `yaml:"version"`
	// Issuer enables OIDC discovery of the authorization and token
	// endpoints. Empty means the built-in Google endpoints.
	Issuer string `yaml:"issuer,omitempty"`
	// AuthURL/TokenURL override the endpoints directly and win over Issuer.
	AuthURL  string `yaml:"auth-url,omitempty"`
	TokenURL string `yaml:"token-url,omitempty"`
	// TokenInfoURL overrides the endpoint `status --verify` checks against.
	TokenInfoURL string `yaml:"tokeninfo-url,omitempty"`
	// Scopes replaces the built-in scope list when set.
	Scopes []string `yaml:"scopes,omitempty"`
	// CallbackPort is the loopback port the provider redirects to.
	CallbackPort int      `yaml:"callback-port,omitempty"`
	TokenStorage string   `yaml:"token-storage,omitempty"`
	Settings     Settings `yaml:"settings,omitempty"`
}

type Settings struct {
	OutputFormat string `yaml:"output-format,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{Version: VersionV1}
}

// Load reads the config file at path. A missing file is not an error; the
// tool works with defaults and environment variables alone.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Version == "" {
		cfg.Version = VersionV1
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if cfg.Version == "" {
		cfg.Version = VersionV1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	content, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, content, 0o600)
}

func (c *Config) Validate() error {
	if c.CallbackPort < 0 || c.CallbackPort > 65535 {
		return fmt.Errorf("callback-port out of range: %d", c.CallbackPort)
	}
	if c.TokenStorage != "" && c.TokenStorage != "file" && c.TokenStorage != "keychain" {
		return fmt.Errorf("token-storage must be file or keychain, got %q", c.TokenStorage)
	}
	for _, s := range c.Scopes {
		if strings.TrimSpace(s) == "" {
			return errors.New("scopes entries cannot be empty")
		}
	}
	return nil
}
