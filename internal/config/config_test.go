package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 30, cfg.Share.TTLMinutes)
	assert.NotEmpty(t, cfg.Share.BaseURL)
	assert.False(t, cfg.TestMode)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("AUTOLOG_CONFIG_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Share, cfg.Share)
}

func TestLoadReadsTOML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AUTOLOG_CONFIG_DIR", dir)

	data := `[storage]
document_path = "/tmp/custom.json"

[share]
ttl_minutes = 90
base_url = "https://example.com/t"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(data), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.json", cfg.Storage.DocumentPath)
	assert.Equal(t, 90, cfg.Share.TTLMinutes)
	assert.Equal(t, "https://example.com/t", cfg.Share.BaseURL)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("AUTOLOG_CONFIG_DIR", t.TempDir())
	t.Setenv("AUTOLOG_TEST_MODE", "true")
	t.Setenv("AUTOLOG_DOCUMENT_PATH", "/tmp/override.json")
	t.Setenv("AUTOLOG_SHARE_TTL_MINUTES", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.TestMode)
	assert.Equal(t, "/tmp/override.json", cfg.Storage.DocumentPath)
	assert.Equal(t, 5, cfg.Share.TTLMinutes)
}

func TestDocumentPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AUTOLOG_CONFIG_DIR", dir)

	cfg := DefaultConfig()
	path, err := cfg.DocumentPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "autolog.json"), path)

	cfg.Storage.DocumentPath = "/elsewhere/doc.json"
	path, err = cfg.DocumentPath()
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere/doc.json", path)
}

func TestEnsureConfigDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "autolog")
	t.Setenv("AUTOLOG_CONFIG_DIR", dir)

	require.NoError(t, EnsureConfigDir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// already existing is not an error
	require.NoError(t, EnsureConfigDir())
}

func TestDocumentPathTestMode(t *testing.T) {
	t.Setenv("AUTOLOG_CONFIG_DIR", t.TempDir())

	cfg := DefaultConfig()
	cfg.TestMode = true

	path, err := cfg.DocumentPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(os.TempDir(), "autolog-test.json"), path)
}
