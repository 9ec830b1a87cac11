package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "DESC"},
		{"ASC", "ASC"},
		{"asc", "ASC"},
		{"  asc  ", "ASC"},
		{"DESC", "DESC"},
		{"desc", "DESC"},
		{"sideways", "DESC"},
		{"ASC; DROP TABLE orders;--", "DESC"},
		{"   ", "DESC"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ValidateSortOrder(tt.input), "input %q", tt.input)
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty falls back to default", "", "created_at"},
		{"whitelisted field passes", "price", "price"},
		{"whitespace trimmed", "  name  ", "name"},
		{"unknown field falls back", "secret_column", "created_at"},
		{"case sensitive", "NAME", "created_at"},
		{"injection falls back", "id; DROP TABLE orders;--", "created_at"},
		{"quotes fall back", "name'--", "created_at"},
		{"embedded space falls back", "name products", "created_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, ProductSortFields, "created_at"))
		})
	}
}

func TestSortFieldWhitelists(t *testing.T) {
	whitelists := map[string]map[string]bool{
		"products":    ProductSortFields,
		"locations":   LocationSortFields,
		"allocations": AllocationSortFields,
		"orders":      OrderSortFields,
	}

	// Every whitelist carries the shared timestamp and id columns plus
	// at least one entity-specific column.
	for name, whitelist := range whitelists {
		t.Run(name, func(t *testing.T) {
			for _, field := range []string{"id", "created_at", "updated_at"} {
				assert.True(t, whitelist[field], "%s should allow %q", name, field)
			}
			assert.Greater(t, len(whitelist), 3)
		})
	}

	assert.True(t, OrderSortFields["order_number"])
	assert.True(t, AllocationSortFields["stock"])
	assert.True(t, LocationSortFields["province"])
}

func TestSortValidationRejectsInjectionPayloads(t *testing.T) {
	payloads := []string{
		"id; DROP TABLE orders;--",
		"id' OR '1'='1",
		"id UNION SELECT * FROM orders",
		"id, (SELECT order_number FROM orders)",
		"CASE WHEN 1=1 THEN id ELSE name END",
		"id/**/;DROP TABLE orders",
		"id\n; DROP TABLE orders",
		"' OR ''='",
	}

	for _, payload := range payloads {
		assert.Equal(t, "created_at", ValidateSortField(payload, OrderSortFields, "created_at"), "payload %q", payload)
		assert.Equal(t, "DESC", ValidateSortOrder(payload), "payload %q", payload)
	}
}
