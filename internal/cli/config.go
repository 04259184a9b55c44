package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds file-based defaults for the CLI. Flags take precedence over
// config values.
type Config struct {
	// Database is the default SQLite database path.
	Database string `yaml:"database"`
}

// LoadConfig reads a YAML config file. An empty path yields a zero Config.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}

// resolveDatabase picks the database path from the flag, falling back to the
// config file. Errors if neither is set.
func resolveDatabase(flag string, opts *RootOptions) (string, error) {
	if flag != "" {
		return flag, nil
	}
	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return "", err
	}
	if cfg.Database == "" {
		return "", fmt.Errorf("no database given: use --db or set database in the config file")
	}
	return cfg.Database, nil
}
