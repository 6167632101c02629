// Package config loads and validates the server's configuration: the
// data directory, RDB snapshot filename, listen port, and log level. CLI
// flags take precedence over an optional YAML file, which in turn
// overrides the package's built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the fully resolved, read-only server configuration.
type Config struct {
	Dir        string `yaml:"dir"`
	DBFilename string `yaml:"dbFilename"`
	Port       int    `yaml:"port"`
	LogLevel   string `yaml:"logLevel"`
}

// Defaults returns the built-in configuration used when neither a config
// file nor CLI flags override a field.
func Defaults() Config {
	return Config{
		Dir:        os.TempDir(),
		DBFilename: "dump.rdb",
		Port:       6379,
		LogLevel:   "info",
	}
}

// LoadFile reads a YAML config file and overlays it onto a copy of base.
// A missing file is not an error: it simply means no overlay applies.
func LoadFile(path string, base Config) (Config, error) {
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return Config{}, fmt.Errorf("read config file %q: %w", path, err)
	}

	out := base
	if err := yaml.Unmarshal(data, &out); err != nil {
		return Config{}, fmt.Errorf("parse config file %q: %w", path, err)
	}
	return out, nil
}

// Validate checks that the resolved configuration is usable.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Port)
	}
	if c.Dir == "" {
		return fmt.Errorf("config: dir must not be empty")
	}
	if c.DBFilename == "" {
		return fmt.Errorf("config: dbFilename must not be empty")
	}
	return nil
}

// RDBPath returns the resolved path to the configured RDB snapshot file.
func (c Config) RDBPath() string {
	return filepath.Join(c.Dir, c.DBFilename)
}

// Get implements the subset of CONFIG GET this server supports: the two
// parameter names spec'd for the keyspace's on-disk location.
func (c Config) Get(name string) (string, bool) {
	switch name {
	case "dir":
		return c.Dir, true
	case "dbfilename":
		return c.DBFilename, true
	default:
		return "", false
	}
}
