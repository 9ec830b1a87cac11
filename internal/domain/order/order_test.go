package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder("ORD000001", "customer-1")
	require.NoError(t, err)
	return o
}

func TestFormatOrderNumber(t *testing.T) {
	assert.Equal(t, "ORD000001", FormatOrderNumber(1))
	assert.Equal(t, "ORD000042", FormatOrderNumber(42))
	assert.Equal(t, "ORD1000000", FormatOrderNumber(1000000))
}

func TestNewOrder(t *testing.T) {
	t.Run("creates order in CREATED", func(t *testing.T) {
		o := newTestOrder(t)

		assert.Equal(t, StatusCreated, o.Status)
		assert.True(t, o.TotalAmount.IsZero())
		assert.Equal(t, 1, o.Version)
	})

	t.Run("fails without customer", func(t *testing.T) {
		_, err := NewOrder("ORD000001", "")

		require.Error(t, err)
	})
}

func TestOrder_AddItem(t *testing.T) {
	o := newTestOrder(t)

	require.NoError(t, o.AddItem(uuid.New(), 3, decimal.NewFromInt(100)))
	require.NoError(t, o.AddItem(uuid.New(), 2, decimal.NewFromFloat(49.50)))

	assert.Len(t, o.Items, 2)
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(399)), "got %s", o.TotalAmount)

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		err := o.AddItem(uuid.New(), 0, decimal.NewFromInt(10))
		require.Error(t, err)
	})
}

func TestOrder_SetShippingFee(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.AddItem(uuid.New(), 1, decimal.NewFromInt(100)))

	require.NoError(t, o.SetShippingFee(decimal.NewFromInt(50)))
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(150)))

	// Re-quoting replaces the previous fee instead of stacking it.
	require.NoError(t, o.SetShippingFee(decimal.NewFromInt(150)))
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(250)))
}

func TestStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to Status
		allowed  bool
	}{
		{StatusCreated, StatusPaid, true},
		{StatusCreated, StatusCancelled, true},
		{StatusCreated, StatusShipped, false},
		{StatusPaid, StatusConfirmed, true},
		{StatusPaid, StatusCancelled, true},
		{StatusConfirmed, StatusShipped, true},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusPaid, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.allowed, c.from.CanTransitionTo(c.to), "%s -> %s", c.from, c.to)
	}
}

func TestOrder_RecordPayment(t *testing.T) {
	t.Run("moves order to PAID and stamps payment time", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.RecordPayment("https://bucket/payments/p.jpg"))

		assert.Equal(t, StatusPaid, o.Status)
		assert.Equal(t, "https://bucket/payments/p.jpg", o.PaymentImage)
		require.NotNil(t, o.PaymentAt)
	})

	t.Run("rejects payment on a shipped order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.OverrideStatus(StatusShipped))

		err := o.RecordPayment("url")

		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_TRANSITION", derr.Code)
	})
}

func TestOrder_AssignTracking(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.RecordPayment("url"))
	require.NoError(t, o.Confirm())

	require.NoError(t, o.AssignTracking("TH1234567890"))

	assert.Equal(t, StatusShipped, o.Status)
	assert.Equal(t, "TH1234567890", o.TrackingNumber)

	t.Run("rejects empty tracking number", func(t *testing.T) {
		o := newTestOrder(t)
		err := o.AssignTracking("")
		require.Error(t, err)
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("cancels from CREATED, PAID, and CONFIRMED", func(t *testing.T) {
		for _, s := range []Status{StatusCreated, StatusPaid, StatusConfirmed} {
			o := newTestOrder(t)
			require.NoError(t, o.OverrideStatus(s))

			require.NoError(t, o.Cancel())
			assert.Equal(t, StatusCancelled, o.Status)
		}
	})

	t.Run("refuses to cancel shipped or delivered orders", func(t *testing.T) {
		for _, s := range []Status{StatusShipped, StatusDelivered} {
			o := newTestOrder(t)
			require.NoError(t, o.OverrideStatus(s))

			err := o.Cancel()

			var derr *shared.DomainError
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, "INVALID_TRANSITION", derr.Code)
		}
	})

	t.Run("cancelling twice fails", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Cancel())

		err := o.Cancel()

		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_TRANSITION", derr.Code)
	})
}

func TestOrder_OverrideStatus(t *testing.T) {
	o := newTestOrder(t)

	// The override skips transition guards entirely.
	require.NoError(t, o.OverrideStatus(StatusDelivered))
	assert.Equal(t, StatusDelivered, o.Status)

	require.NoError(t, o.OverrideStatus(StatusCreated))
	assert.Equal(t, StatusCreated, o.Status)

	t.Run("rejects unknown status", func(t *testing.T) {
		err := o.OverrideStatus(Status("LOST"))
		require.Error(t, err)
	})
}

func TestOrder_FullLifecycle(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.AddItem(uuid.New(), 2, decimal.NewFromInt(75)))
	o.SetDestination("Bangkok", "Chatuchak", "1 Main St", "10900", "020000000")
	o.AssignFulfillment(uuid.New(), nil)

	require.NoError(t, o.RecordPayment("url"))
	require.NoError(t, o.Confirm())
	require.NoError(t, o.AssignTracking("TRACK1"))
	require.NoError(t, o.MarkDelivered())

	assert.Equal(t, StatusDelivered, o.Status)
	assert.False(t, o.IsCancellable())
}
