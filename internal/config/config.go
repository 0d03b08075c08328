package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Storage StorageConfig `toml:"storage"`
	Share   ShareConfig   `toml:"share"`

	// TestMode redirects storage to a disposable location and suppresses
	// destructive confirmation prompts. Set via AUTOLOG_TEST_MODE.
	TestMode bool `toml:"-"`
}

type StorageConfig struct {
	// DocumentPath overrides where the configuration document lives.
	// Empty means <config dir>/autolog.json.
	DocumentPath string `toml:"document_path"`
}

type ShareConfig struct {
	TTLMinutes int    `toml:"ttl_minutes"`
	BaseURL    string `toml:"base_url"`
}

func DefaultConfig() Config {
	return Config{
		Share: ShareConfig{
			TTLMinutes: 30,
			BaseURL:    "https://autolog.dev/t",
		},
	}
}

func ConfigDir() (string, error) {
	if dir := os.Getenv("AUTOLOG_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "autolog"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if len(data) > 0 {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AUTOLOG_TEST_MODE"); v != "" {
		if mode, err := strconv.ParseBool(v); err == nil {
			cfg.TestMode = mode
		}
	}
	if v := os.Getenv("AUTOLOG_DOCUMENT_PATH"); v != "" {
		cfg.Storage.DocumentPath = v
	}
	if v := os.Getenv("AUTOLOG_SHARE_TTL_MINUTES"); v != "" {
		if ttl, err := strconv.Atoi(v); err == nil && ttl > 0 {
			cfg.Share.TTLMinutes = ttl
		}
	}
}

// DocumentPath resolves where the configuration document is stored. Test
// mode keeps it under the system temp dir so runs never touch real data.
func (c *Config) DocumentPath() (string, error) {
	if c.Storage.DocumentPath != "" {
		return c.Storage.DocumentPath, nil
	}
	if c.TestMode {
		return filepath.Join(os.TempDir(), "autolog-test.json"), nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "autolog.json"), nil
}

func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
