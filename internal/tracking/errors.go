// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tracking

import (
	"errors"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// ErrNotFound reports an operation on an upload request id that does not
// exist.
var ErrNotFound = errors.New("upload request not found")

// ErrInvalidStatus reports a status-update with an unrecognized value.
// The update is rejected before any write.
var ErrInvalidStatus = errors.New("invalid status")

// IsBusy reports whether err is SQLite's busy/locked condition. Busy is a
// retryable class: the statement did not run and may be reissued; it is
// never treated as fatal by callers.
func IsBusy(err error) bool {
	var serr sqlite3.Error
	if !errors.As(err, &serr) {
		return false
	}
	return serr.Code == sqlite3.ErrBusy || serr.Code == sqlite3.ErrLocked
}
