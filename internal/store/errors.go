package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/lib/pq"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique constraint rejects a write.
var ErrDuplicate = errors.New("duplicate key")

// ErrUnavailable is returned when the backing store is unreachable.
// It is the only store error class callers may retry.
var ErrUnavailable = errors.New("store unavailable")

const pqUniqueViolation = "23505"

// classify maps driver-level failures onto the store's sentinel errors.
// Unique-constraint violations become ErrDuplicate; connection-class
// failures become ErrUnavailable; everything else passes through.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return ErrDuplicate
	}

	var netErr net.Error
	if errors.As(err, &netErr) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ErrUnavailable
	}

	return err
}
