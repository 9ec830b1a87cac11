package persistence

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryableTxError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"order number collision", &pgconn.PgError{Code: "23505", ConstraintName: "idx_orders_order_number"}, true},
		{"unique violation without constraint name", &pgconn.PgError{Code: "23505"}, true},
		{"duplicate location code", &pgconn.PgError{Code: "23505", ConstraintName: "idx_sales_locations_code"}, false},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, false},
		{"column-style order number collision", errors.New("UNIQUE constraint failed: orders.order_number"), true},
		{"column-style duplicate code", errors.New("UNIQUE constraint failed: sales_locations.code"), false},
		{"plain failure", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, isRetryableTxError(tt.err))
		})
	}
}
