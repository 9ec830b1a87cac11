package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/retail/backend/internal/domain/shared"
)

const (
	maxTxAttempts = 3
	retryBaseWait = 25 * time.Millisecond
)

// isRetryableTxError reports whether a transaction failed in a way that a
// clean re-run can fix: a serialization failure (40001), a deadlock
// (40P01), or two creating transactions drawing the same order number.
// The re-run recounts against the winner's committed row and takes the
// next number.
func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01":
			return true
		case "23505":
			return pgErr.ConstraintName == "" ||
				strings.Contains(pgErr.ConstraintName, "order_number")
		}
		return false
	}
	// Drivers without structured errors report the violated column instead
	// of the index name.
	return strings.Contains(err.Error(), "orders.order_number")
}

// withTxRetry runs fn up to maxTxAttempts times, backing off between
// retryable failures. When the attempts are exhausted the caller gets
// STORAGE_UNAVAILABLE instead of a raw driver error.
func withTxRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryBaseWait << (attempt - 1)):
			}
		}
		err = fn()
		if err == nil || !isRetryableTxError(err) {
			return err
		}
	}
	return shared.ErrStorageUnavailable
}
