// Package config loads tool configuration from TOML files.
//
// Configuration is optional: every field has a usable default, and the
// CLI only reads a file when one exists at the default location or is
// named explicitly with --config.
package config

import (
	"math"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/latt-dev/latt/pkg/errors"
	"github.com/latt-dev/latt/pkg/lattice"
)

// Config holds all tool configuration.
type Config struct {
	// LMScale is the default language-model scale for decoding.
	LMScale float64 `toml:"lm_scale"`

	// SilenceToken is the edge label treated as silence.
	SilenceToken string `toml:"silence_token"`

	// CacheDir is the directory for the file cache. Empty means the
	// user cache directory.
	CacheDir string `toml:"cache_dir"`

	Server ServerConfig `toml:"server"`
	Redis  RedisConfig  `toml:"redis"`
	Mongo  MongoConfig  `toml:"mongo"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// RedisConfig configures the optional shared cache backend.
// An empty Addr disables Redis and falls back to the file cache.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig configures the optional lattice archive.
// An empty URI disables the archive commands.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LMScale:      1.0,
		SilenceToken: lattice.SilenceToken,
		Server:       ServerConfig{Addr: ":8080"},
		Mongo:        MongoConfig{Database: "latt"},
	}
}

// DefaultPath returns the default config file location, or "" when the
// user config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "latt", "config.toml")
}

// Load reads a config file over the defaults. A missing file is an
// error; use LoadIfExists when the file is optional.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config file: %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeParse, err, "parse config file: %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadIfExists reads the config file at path if it exists, otherwise
// returns the defaults. An empty path means the default location.
func LoadIfExists(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks configured values.
func (c Config) Validate() error {
	if math.IsNaN(c.LMScale) || math.IsInf(c.LMScale, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "lm_scale must be finite")
	}
	if c.SilenceToken == "" {
		return errors.New(errors.ErrCodeInvalidInput, "silence_token must not be empty")
	}
	return nil
}
