package config

import (
	"os"
	"path/filepath"
	"time"

	"todo-list/internal/logging"
	"todo-list/internal/storage"
)

// Config holds all configuration options for the todo application
type Config struct {
	Storage     StorageConfig     `toml:"storage"`
	Logging     LoggingConfig     `toml:"logging"`
	Application ApplicationConfig `toml:"application"`
}

// StorageConfig holds data file configuration
type StorageConfig struct {
	Dir            string `toml:"dir" env:"TODO_DATA_DIR"`
	Filename       string `toml:"file" env:"TODO_DATA_FILE"`
	Format         string `toml:"format" env:"TODO_FORMAT"`
	DirPermissions uint32 `toml:"dir_permissions" env:"TODO_DATA_DIR_PERMISSIONS"`
}

// LoggingConfig holds log output configuration
type LoggingConfig struct {
	Level  string `toml:"level" env:"TODO_LOG_LEVEL"`
	Format string `toml:"format" env:"TODO_LOG_FORMAT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `toml:"timeout" env:"TODO_TIMEOUT"`
	Verbose bool          `toml:"verbose" env:"TODO_VERBOSE"`
}

// DefaultDir returns ~/.todo, or .todo when the home directory is unknown
func DefaultDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".todo"
	}
	return filepath.Join(homeDir, ".todo")
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Dir:            DefaultDir(),
			Filename:       "tasks.txt",
			Format:         string(storage.DefaultFormat),
			DirPermissions: 0755,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
		Application: ApplicationConfig{
			Timeout: 30 * time.Second,
			Verbose: false,
		},
	}
}

// GetDataPath returns the full path to the data file
func (c *Config) GetDataPath() string {
	if filepath.IsAbs(c.Storage.Filename) {
		return c.Storage.Filename
	}
	return filepath.Join(c.Storage.Dir, c.Storage.Filename)
}

// GetFormat returns the configured storage format. Call after Validate.
func (c *Config) GetFormat() storage.Format {
	format, err := storage.ParseFormat(c.Storage.Format)
	if err != nil {
		return storage.DefaultFormat
	}
	return format
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Storage configuration
	if dir := os.Getenv("TODO_DATA_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if filename := os.Getenv("TODO_DATA_FILE"); filename != "" {
		c.Storage.Filename = filename
	}
	if format := os.Getenv("TODO_FORMAT"); format != "" {
		c.Storage.Format = format
	}
	if perms := os.Getenv("TODO_DATA_DIR_PERMISSIONS"); perms != "" {
		c.Storage.DirPermissions = ParseUint32WithFallback(perms, 8, c.Storage.DirPermissions)
	}

	// Logging configuration
	if level := os.Getenv("TODO_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if format := os.Getenv("TODO_LOG_FORMAT"); format != "" {
		c.Logging.Format = format
	}

	// Application configuration
	if timeout := os.Getenv("TODO_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("TODO_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate storage configuration
	if c.Storage.Dir == "" {
		return &ConfigError{Field: "storage.dir", Message: "data directory cannot be empty"}
	}
	if c.Storage.Filename == "" {
		return &ConfigError{Field: "storage.file", Message: "data filename cannot be empty"}
	}
	if _, err := storage.ParseFormat(c.Storage.Format); err != nil {
		return &ConfigError{Field: "storage.format", Message: "format must be one of text, json, sqlite"}
	}
	if c.Storage.DirPermissions == 0 || c.Storage.DirPermissions > 0777 {
		return &ConfigError{Field: "storage.dir_permissions", Message: "directory permissions must be between 0001 and 0777"}
	}

	// Validate logging configuration
	if !logging.IsValidLevel(c.Logging.Level) {
		return &ConfigError{Field: "logging.level", Message: "level must be one of debug, info, warn, error"}
	}
	if !logging.IsValidFormat(c.Logging.Format) {
		return &ConfigError{Field: "logging.format", Message: "format must be one of text, json, logfmt"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
