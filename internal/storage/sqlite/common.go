package sqlite

import (
	"context"
	"database/sql"

	"todo-list/internal/errors"
)

// HandleDatabaseError converts database errors to structured app errors
func HandleDatabaseError(operation string, err error) error {
	if errors.IsAppError(err) {
		return err
	}
	return errors.WrapError(err, errors.ErrorTypeIO, "database operation failed: "+operation)
}

// ExecuteInTx runs fn inside a transaction, committing on success and rolling back otherwise
func ExecuteInTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit transaction", err)
	}
	return nil
}

// QuerySingleValue executes a query that returns a single scalar
func QuerySingleValue[T any](ctx context.Context, db *sql.DB, query string, args ...interface{}) (T, error) {
	var value T
	if err := db.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		return value, HandleDatabaseError("query value", err)
	}
	return value, nil
}

// QueryMultiple executes a query that returns multiple rows and scans them
func QueryMultiple[T any](ctx context.Context, db *sql.DB, query string, scanFunc func(Rows) ([]*T, error), entityType string, args ...interface{}) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, HandleDatabaseError("query "+entityType, err)
	}
	defer rows.Close()

	results, err := scanFunc(rows)
	if err != nil {
		return nil, HandleDatabaseError("scan "+entityType, err)
	}

	return results, nil
}
