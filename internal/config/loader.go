package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"todo-list/internal/errors"
)

// ConfigFileEnv names the environment variable that points at a config file
const ConfigFileEnv = "TODO_CONFIG"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// DefaultConfigFile returns the config file path from TODO_CONFIG, or ~/.todo/config.toml
func DefaultConfigFile() string {
	if path := os.Getenv(ConfigFileEnv); path != "" {
		return path
	}
	return filepath.Join(DefaultDir(), "config.toml")
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the TOML config file, if present
// 3. Override with environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	return l.LoadWithOverrides(nil)
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	configFile := DefaultConfigFile()
	explicit := os.Getenv(ConfigFileEnv) != ""
	if overrides != nil && overrides.ConfigFile != nil && *overrides.ConfigFile != "" {
		configFile = *overrides.ConfigFile
		explicit = true
	}

	if err := l.config.LoadFromFile(configFile, explicit); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(l.config, overrides)
	}

	if err := l.config.Validate(); err != nil {
		return nil, toAppError(err)
	}

	return l.config, nil
}

// LoadFromFile merges settings from a TOML file. A missing file is only an
// error when required is set.
func (c *Config) LoadFromFile(path string, required bool) error {
	_, err := toml.DecodeFile(path, c)
	if err == nil {
		return nil
	}
	if stderrors.Is(err, fs.ErrNotExist) && !required {
		return nil
	}

	cfgErr := errors.NewConfigError("config file", err.Error())
	cfgErr.Cause = err
	return cfgErr.WithContext("path", path)
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	ConfigFile *string

	// Storage overrides
	DataDir  *string
	DataFile *string
	Format   *string

	// Logging overrides
	LogLevel  *string
	LogFormat *string

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	// Storage overrides
	if overrides.DataDir != nil {
		config.Storage.Dir = *overrides.DataDir
	}
	if overrides.DataFile != nil {
		config.Storage.Filename = *overrides.DataFile
	}
	if overrides.Format != nil {
		config.Storage.Format = *overrides.Format
	}

	// Logging overrides
	if overrides.LogLevel != nil {
		config.Logging.Level = *overrides.LogLevel
	}
	if overrides.LogFormat != nil {
		config.Logging.Format = *overrides.LogFormat
	}

	// Application overrides
	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}

func toAppError(err error) error {
	var cfgErr *ConfigError
	if stderrors.As(err, &cfgErr) {
		appErr := errors.NewConfigError(cfgErr.Field, cfgErr.Message)
		appErr.Cause = cfgErr
		return appErr
	}
	return err
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
