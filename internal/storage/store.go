// Package storage persists task lists to files.
//
// Three formats are supported: a delimited text file with one
// "<id>,<title>,<done>" line per task, an indented JSON document, and a
// single-table SQLite snapshot. Every Save overwrites the whole target;
// every Load returns a complete slice or an error, never a partial result.
package storage

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"todo-list/internal/domain"
	"todo-list/internal/errors"
	"todo-list/internal/logging"
)

// Format selects the on-disk representation.
type Format string

const (
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatSQLite Format = "sqlite"
)

// DefaultFormat is used when no format is given.
const DefaultFormat = FormatText

// ParseFormat maps a user-supplied name to a Format. An empty name yields DefaultFormat.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return DefaultFormat, nil
	case "text", "txt", "csv":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "sqlite", "db":
		return FormatSQLite, nil
	default:
		return "", errors.NewInvalidInputError("format", name, "supported formats are text, json and sqlite")
	}
}

// String implements fmt.Stringer
func (f Format) String() string {
	return string(f)
}

// Store reads and writes complete task lists.
type Store interface {
	// Save overwrites path with tasks, in order.
	Save(ctx context.Context, path string, tasks []*domain.Task) error
	// Load reads every task from path. A missing file yields an empty slice and no error.
	Load(ctx context.Context, path string) ([]*domain.Task, error)
}

// New returns the Store for format. A nil logger discards output.
func New(format Format, logger *log.Logger) (Store, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	switch format {
	case FormatText:
		return NewDelimitedStore(logger), nil
	case FormatJSON:
		return NewStructuredStore(logger), nil
	case FormatSQLite:
		return NewSnapshotStore(logger), nil
	default:
		return nil, errors.NewInvalidInputError("format", string(format), "unsupported format")
	}
}
