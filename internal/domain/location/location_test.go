package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSalesLocation(t *testing.T) {
	t.Run("creates active location with uppercased code", func(t *testing.T) {
		loc, err := NewSalesLocation("bkk-01", "Bangkok Central", "Bangkok", LocationTypeStore)

		require.NoError(t, err)
		assert.Equal(t, "BKK-01", loc.Code)
		assert.True(t, loc.IsActive())
		assert.Equal(t, LocationTypeStore, loc.LocationType)
	})

	t.Run("fails with empty code", func(t *testing.T) {
		_, err := NewSalesLocation("", "Bangkok Central", "Bangkok", LocationTypeStore)

		require.Error(t, err)
	})

	t.Run("fails with code containing spaces", func(t *testing.T) {
		_, err := NewSalesLocation("BKK 01", "Bangkok Central", "Bangkok", LocationTypeStore)

		require.Error(t, err)
	})

	t.Run("fails without province", func(t *testing.T) {
		_, err := NewSalesLocation("BKK-01", "Bangkok Central", "", LocationTypeStore)

		require.Error(t, err)
	})
}

func TestSalesLocation_Lifecycle(t *testing.T) {
	loc, err := NewSalesLocation("BKK-01", "Bangkok Central", "Bangkok", LocationTypeWarehouse)
	require.NoError(t, err)

	loc.Deactivate()
	assert.False(t, loc.IsActive())

	loc.Activate()
	assert.True(t, loc.IsActive())

	require.NoError(t, loc.Update("Bangkok North", "Bangkok", "Chatuchak", "2 Market Rd", "10900", "021111111"))
	assert.Equal(t, "Bangkok North", loc.Name)
	assert.Equal(t, "Chatuchak", loc.District)
}

func TestNewDeliveryAddress(t *testing.T) {
	t.Run("creates active address", func(t *testing.T) {
		addr, err := NewDeliveryAddress("dc-1", "Main Depot", "Bangkok")

		require.NoError(t, err)
		assert.Equal(t, "DC-1", addr.Code)
		assert.True(t, addr.IsActive())
	})

	t.Run("fails without province", func(t *testing.T) {
		_, err := NewDeliveryAddress("DC-1", "Main Depot", "")

		require.Error(t, err)
	})
}
