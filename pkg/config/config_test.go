package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, VersionV1, cfg.Version)
	assert.Empty(t, cfg.Issuer)
	assert.Zero(t, cfg.CallbackPort)
}

func TestLoad_ParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
version: v1
issuer: https://accounts.example.com
callback-port: 9200
token-storage: keychain
scopes:
  - https://www.googleapis.com/auth/gmail.readonly
settings:
  output-format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://accounts.example.com", cfg.Issuer)
	assert.Equal(t, 9200, cfg.CallbackPort)
	assert.Equal(t, "keychain", cfg.TokenStorage)
	assert.Equal(t, []string{"https://www.googleapis.com/auth/gmail.readonly"}, cfg.Scopes)
	assert.Equal(t, "json", cfg.Settings.OutputFormat)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	dir := t.TempDir()

	cases := map[string]string{
		"bad yaml":    "version: [",
		"bad port":    "callback-port: 70000",
		"bad storage": "token-storage: vault",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
			_, err := Load(path)
			require.Error(t, err)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := &Config{CallbackPort: 8085, TokenStorage: "file"}
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, VersionV1, loaded.Version)
	assert.Equal(t, 8085, loaded.CallbackPort)
	assert.Equal(t, "file", loaded.TokenStorage)
}

func TestDir_EnvOverrideWins(t *testing.T) {
	t.Setenv(EnvConfigDir, "/tmp/gauth-test-dir")
	assert.Equal(t, "/tmp/gauth-test-dir", Dir())
	assert.Equal(t, filepath.Join("/tmp/gauth-test-dir", "config.yaml"), DefaultConfigPath())
}

func TestDir_FollowsUserConfigDir(t *testing.T) {
	t.Setenv(EnvConfigDir, "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	if _, err := os.UserConfigDir(); err != nil {
		t.Skip("no user config dir on this platform")
	}
	base, _ := os.UserConfigDir()
	assert.Equal(t, filepath.Join(base, "gauth"), Dir())
}

func TestDir_IsDeterministic(t *testing.T) {
	// The same environment must always address the same records.
	t.Setenv(EnvConfigDir, "")
	first := Dir()
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, Dir())
	}
}
