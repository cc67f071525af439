package config

import (
	"os"
	"path/filepath"

	"todo-list/internal/errors"
)

// EnsureDataDir creates the directory holding the data file
func EnsureDataDir(config *Config) error {
	dir := filepath.Dir(config.GetDataPath())
	if err := os.MkdirAll(dir, os.FileMode(config.Storage.DirPermissions)); err != nil {
		return errors.NewIOError("create data directory", dir, err)
	}
	return nil
}
