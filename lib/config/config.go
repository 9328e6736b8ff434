// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "SHELLFN_CONFIG"

// Config is the shellfn configuration.
type Config struct {
	// Paths configures directory locations.
	Paths PathsConfig `yaml:"paths"`

	// Cache configures the stub cache.
	Cache CacheConfig `yaml:"cache"`

	// Output configures how results are written.
	Output OutputConfig `yaml:"output"`

	// Log configures diagnostic logging on stderr.
	Log LogConfig `yaml:"log"`
}

// PathsConfig configures directory locations.
type PathsConfig struct {
	// Cache is the root of shellfn's cache. Stub cache entries live in
	// its "stubs" subdirectory and generated wrappers in "wrappers".
	// Default: the user cache directory plus "shellfn".
	Cache string `yaml:"cache"`
}

// CacheConfig configures the stub cache.
type CacheConfig struct {
	// Compression for new entries: none, lz4, or zstd.
	// Default: zstd
	Compression string `yaml:"compression"`

	// MaxAge is the default age for "shellfn cache prune".
	// Default: 720h
	MaxAge string `yaml:"max_age"`
}

// OutputConfig configures result rendering.
type OutputConfig struct {
	// Format is shell or json.
	// Default: shell
	Format string `yaml:"format"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is debug, info, warn, or error.
	// Default: warn
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given. Loaded
// files are merged over it, so a file only needs the keys it changes.
func Default() *Config {
	cacheRoot, err := os.UserCacheDir()
	if err != nil {
		cacheRoot = filepath.Join(os.TempDir(), "shellfn-cache")
	}
	return &Config{
		Paths:  PathsConfig{Cache: filepath.Join(cacheRoot, "shellfn")},
		Cache:  CacheConfig{Compression: "zstd", MaxAge: "720h"},
		Output: OutputConfig{Format: "shell"},
		Log:    LogConfig{Level: "warn"},
	}
}

// Load loads the file named by SHELLFN_CONFIG, or returns Default when
// the variable is unset. A shell function call must work with no
// configuration at all.
func Load() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		cfg := Default()
		cfg.expandVariables()
		return cfg, nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path, merged over
// Default. Unknown keys are an error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	cfg.expandVariables()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Paths.Cache = expandVars(c.Paths.Cache, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns. vars are
// consulted before the process environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		name := parts[1]
		defaultValue := parts[2]

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Paths.Cache == "" {
		errs = append(errs, fmt.Errorf("paths.cache is required"))
	}

	compressions := []string{"none", "lz4", "zstd"}
	if !slices.Contains(compressions, c.Cache.Compression) {
		errs = append(errs, fmt.Errorf("cache.compression must be one of: %s", strings.Join(compressions, ", ")))
	}
	if age, err := time.ParseDuration(c.Cache.MaxAge); err != nil {
		errs = append(errs, fmt.Errorf("cache.max_age: %w", err))
	} else if age <= 0 {
		errs = append(errs, fmt.Errorf("cache.max_age must be positive, got %s", c.Cache.MaxAge))
	}

	formats := []string{"shell", "json"}
	if !slices.Contains(formats, c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format must be one of: %s", strings.Join(formats, ", ")))
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	return errors.Join(errs...)
}

// StubDir is where stub cache entries are stored.
func (c *Config) StubDir() string { return filepath.Join(c.Paths.Cache, "stubs") }

// WrapperDir is where generated wrappers are written for sourcing.
func (c *Config) WrapperDir() string { return filepath.Join(c.Paths.Cache, "wrappers") }

// MaxAge returns cache.max_age. Call Validate first; an invalid value
// yields zero.
func (c *Config) MaxAge() time.Duration {
	age, _ := time.ParseDuration(c.Cache.MaxAge)
	return age
}

// ParseLevel parses a log level name.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	switch name {
	case "debug", "info", "warn", "error":
		if err := level.UnmarshalText([]byte(name)); err != nil {
			return 0, err
		}
		return level, nil
	default:
		return 0, fmt.Errorf("unknown level %q (expected debug, info, warn, or error)", name)
	}
}
