// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the database password goes to the OS
// keychain.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"carrental/cli/internal/xdg"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name inside the XDG config dir.
const FileName = "config.yaml"

// Environment variables that override the configured server DSN, in order.
var DSNEnvVars = []string{"CARRENTAL_DSN", "DATABASE_URL"}

// Config holds non-sensitive CLI settings.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig describes where the databases live.
type ServerConfig struct {
	// DSN addresses the server; user, password and database are filled in per call.
	DSN string `yaml:"dsn"`
	// SystemDatabase is the administrative database the provisioning procedures live in.
	SystemDatabase string `yaml:"system_database"`
	// GuestDatabase is the fixed tenant database guests read from.
	GuestDatabase string `yaml:"guest_database"`
	// InlineLiterals renders values into statement text instead of using placeholders.
	InlineLiterals bool `yaml:"inline_literals"`
}

// LoggingConfig controls the diagnostic logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		Server: ServerConfig{
			DSN:            "postgres://localhost:5432/postgres?sslmode=disable",
			SystemDatabase: "postgres",
			GuestDatabase:  "car_rental",
		},
		Logging: LoggingConfig{Level: "warn"},
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads the configuration from the XDG config dir; a missing file returns
// defaults. Environment overrides are applied last.
func Load() (Config, error) {
	p, err := Path()
	if err != nil {
		return Config{}, err
	}
	return LoadFile(p)
}

// LoadFile reads the configuration from path.
func LoadFile(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return c, err
	default:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return c, err
		}
	}
	c.applyDefaults()
	c.applyEnv()
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	return SaveFile(p, c)
}

// SaveFile writes c to path with 0600 permissions.
func SaveFile(path string, c Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

func (c *Config) applyDefaults() {
	d := Default()
	if strings.TrimSpace(c.Server.DSN) == "" {
		c.Server.DSN = d.Server.DSN
	}
	if c.Server.SystemDatabase == "" {
		c.Server.SystemDatabase = d.Server.SystemDatabase
	}
	if c.Server.GuestDatabase == "" {
		c.Server.GuestDatabase = d.Server.GuestDatabase
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
}

func (c *Config) applyEnv() {
	for _, key := range DSNEnvVars {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			c.Server.DSN = v
			return
		}
	}
}
