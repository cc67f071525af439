package storage

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"todo-list/internal/errors"
)

const filePermissions = 0o644

// readFile returns the file contents, or exists=false when path does not exist.
func readFile(path string) (data []byte, exists bool, err error) {
	data, err = os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, errors.NewIOError("read", path, err)
	}
	return data, true, nil
}

// writeFileAtomic writes data to a temp file next to path and renames it over path,
// so readers never observe a half-written file.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.NewIOError("create temp file", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.NewIOError("write", path, err)
	}
	if err := tmp.Chmod(filePermissions); err != nil {
		tmp.Close()
		return errors.NewIOError("chmod", path, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewIOError("close", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.NewIOError("replace", path, err)
	}
	return nil
}
