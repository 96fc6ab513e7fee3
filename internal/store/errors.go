package store

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// DatabaseError wraps any non-OK/ROW/DONE result from the driver. Busy
// distinguishes SQLITE_BUSY, which this toolkit never retries.
type DatabaseError struct {
	Op    string
	Busy  bool
	Cause error
}

func (e *DatabaseError) Error() string {
	if e.Busy {
		return fmt.Sprintf("%s: database is busy", e.Op)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *DatabaseError) Unwrap() error { return e.Cause }

// wrapDBError classifies err (nil passes through) into a *DatabaseError.
func wrapDBError(op string, err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrBusy {
		return &DatabaseError{Op: op, Busy: true, Cause: err}
	}
	return &DatabaseError{Op: op, Cause: err}
}
