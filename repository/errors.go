package repository

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	mysqldriver "github.com/go-sql-driver/mysql"
)

// Storage failure classes. A read that matches zero rows returns an empty
// slice and a nil error; these errors always mean the operation itself failed.
var (
	// ErrStorageUnavailable means the store could not be reached.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrStorageFailed means the store rejected or failed the operation.
	ErrStorageFailed = errors.New("storage operation failed")
)

// wrapStorage classifies a driver error into the storage taxonomy while
// keeping the cause in the chain.
func wrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	if isUnavailable(err) {
		return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorageFailed, err)
}

func isUnavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysqldriver.ErrInvalidConn) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func isDuplicate(err error) bool {
	var mysqlErr *mysqldriver.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
