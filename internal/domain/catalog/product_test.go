package catalog

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T) *Product {
	t.Helper()
	p, err := NewProduct("Ceramic Mug", decimal.NewFromInt(120), decimal.NewFromInt(60), decimal.NewFromInt(100), 10)
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	t.Run("creates active product", func(t *testing.T) {
		p := newTestProduct(t)

		assert.Equal(t, ProductStatusActive, p.Status)
		assert.Equal(t, int64(10), p.GlobalStock)
		assert.True(t, p.CanSell())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct("", decimal.Zero, decimal.Zero, decimal.Zero, 0)

		require.Error(t, err)
	})

	t.Run("fails with overlong name", func(t *testing.T) {
		_, err := NewProduct(strings.Repeat("x", 201), decimal.Zero, decimal.Zero, decimal.Zero, 0)

		require.Error(t, err)
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewProduct("Mug", decimal.NewFromInt(-1), decimal.Zero, decimal.Zero, 0)

		require.Error(t, err)
	})

	t.Run("fails with negative stock", func(t *testing.T) {
		_, err := NewProduct("Mug", decimal.Zero, decimal.Zero, decimal.Zero, -1)

		require.Error(t, err)
	})
}

func TestProduct_StatusFlips(t *testing.T) {
	p := newTestProduct(t)

	require.NoError(t, p.Deactivate())
	assert.False(t, p.CanSell())

	require.NoError(t, p.Activate())
	assert.True(t, p.CanSell())

	t.Run("double activate fails", func(t *testing.T) {
		err := p.Activate()
		require.Error(t, err)
	})
}

func TestProduct_Update(t *testing.T) {
	p := newTestProduct(t)
	before := p.Version

	err := p.Update("Ceramic Mug XL", "bigger", decimal.NewFromInt(150), decimal.NewFromInt(70), decimal.NewFromInt(120))

	require.NoError(t, err)
	assert.Equal(t, "Ceramic Mug XL", p.Name)
	assert.Equal(t, before+1, p.Version)
}

func TestProduct_GetProfitMargin(t *testing.T) {
	p := newTestProduct(t)

	// (120 - 60) / 60 * 100 = 100%
	assert.True(t, p.GetProfitMargin().Equal(decimal.NewFromInt(100)))

	p.Cost = decimal.Zero
	assert.True(t, p.GetProfitMargin().IsZero())
}
