package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()

	t.Run("marks new request as processed", func(t *testing.T) {
		isNew, err := store.MarkProcessed(ctx, "req-1", 1*time.Hour)
		require.NoError(t, err)
		assert.True(t, isNew, "new request should return true")
	})

	t.Run("returns false for already processed request", func(t *testing.T) {
		isNew, err := store.MarkProcessed(ctx, "req-2", 1*time.Hour)
		require.NoError(t, err)
		assert.True(t, isNew)

		isNew, err = store.MarkProcessed(ctx, "req-2", 1*time.Hour)
		require.NoError(t, err)
		assert.False(t, isNew, "already processed request should return false")
	})

	t.Run("allows reprocessing after expiration", func(t *testing.T) {
		ttl := 10 * time.Millisecond

		isNew, err := store.MarkProcessed(ctx, "req-3", ttl)
		require.NoError(t, err)
		assert.True(t, isNew)

		time.Sleep(20 * time.Millisecond)

		isNew, err = store.MarkProcessed(ctx, "req-3", ttl)
		require.NoError(t, err)
		assert.True(t, isNew, "expired request should be reprocessable")
	})
}

func TestInMemoryIdempotencyStore_IsProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()

	t.Run("returns false for unknown request", func(t *testing.T) {
		processed, err := store.IsProcessed(ctx, "unknown-request")
		require.NoError(t, err)
		assert.False(t, processed)
	})

	t.Run("returns true for processed request", func(t *testing.T) {
		_, err := store.MarkProcessed(ctx, "processed-request", 1*time.Hour)
		require.NoError(t, err)

		processed, err := store.IsProcessed(ctx, "processed-request")
		require.NoError(t, err)
		assert.True(t, processed)
	})

	t.Run("returns false for expired request", func(t *testing.T) {
		_, err := store.MarkProcessed(ctx, "expired-request", 10*time.Millisecond)
		require.NoError(t, err)

		time.Sleep(20 * time.Millisecond)

		processed, err := store.IsProcessed(ctx, "expired-request")
		require.NoError(t, err)
		assert.False(t, processed, "expired request should return false")
	})
}

func TestInMemoryIdempotencyStore_Size(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()

	assert.Equal(t, 0, store.Size(), "empty store should have size 0")

	store.MarkProcessed(ctx, "req-1", 1*time.Hour)
	assert.Equal(t, 1, store.Size())

	store.MarkProcessed(ctx, "req-2", 1*time.Hour)
	assert.Equal(t, 2, store.Size())

	// Marking the same key again shouldn't increase size
	store.MarkProcessed(ctx, "req-1", 1*time.Hour)
	assert.Equal(t, 2, store.Size())
}

func TestInMemoryIdempotencyStore_Cleanup(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()

	store.MarkProcessed(ctx, "short-lived-1", 10*time.Millisecond)
	store.MarkProcessed(ctx, "short-lived-2", 10*time.Millisecond)
	store.MarkProcessed(ctx, "long-lived", 1*time.Hour)

	assert.Equal(t, 3, store.Size())

	time.Sleep(20 * time.Millisecond)

	// Manually trigger cleanup
	store.cleanup()

	assert.Equal(t, 1, store.Size())

	processed, err := store.IsProcessed(ctx, "long-lived")
	require.NoError(t, err)
	assert.True(t, processed)

	processed, err = store.IsProcessed(ctx, "short-lived-1")
	require.NoError(t, err)
	assert.False(t, processed)
}

func TestInMemoryIdempotencyStore_ConcurrentAccess(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()
	const numGoroutines = 100
	const key = "concurrent-request"

	results := make(chan bool, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			isNew, err := store.MarkProcessed(ctx, key, 1*time.Hour)
			if err != nil {
				results <- false
			} else {
				results <- isNew
			}
		}()
	}

	newCount := 0
	duplicateCount := 0
	for i := 0; i < numGoroutines; i++ {
		if <-results {
			newCount++
		} else {
			duplicateCount++
		}
	}

	// Exactly one goroutine should have marked it as new
	assert.Equal(t, 1, newCount, "exactly one goroutine should mark as new")
	assert.Equal(t, numGoroutines-1, duplicateCount, "all others should be duplicates")
}

func TestInMemoryIdempotencyStore_Close(t *testing.T) {
	store := NewInMemoryIdempotencyStore()

	err := store.Close()
	assert.NoError(t, err)

	// Multiple closes should be safe
	err = store.Close()
	assert.NoError(t, err)
}
