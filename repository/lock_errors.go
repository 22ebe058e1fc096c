package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
)

// MySQL error numbers raised when a row lock is not granted.
const (
	mysqlLockWaitTimeout = 1205
	mysqlLockNoWait      = 3572
)

// isLockWait reports whether err is the database giving up on a lock held by
// another connection.
func isLockWait(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlLockWaitTimeout || myErr.Number == mysqlLockNoWait
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrBusy || liteErr.Code == sqlite3.ErrLocked
	}
	return false
}
