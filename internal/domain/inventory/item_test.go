package inventory

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestNewItem(t *testing.T) {
	t.Run("creates item with defaults", func(t *testing.T) {
		item, err := NewItem("Hammer", "TOOL-001", 25, decimal.RequireFromString("9.99"))

		require.NoError(t, err)
		assert.Equal(t, "Hammer", item.Name)
		assert.Equal(t, "TOOL-001", item.SKU)
		assert.Equal(t, 25, item.Quantity)
		assert.Equal(t, "9.99", item.UnitPrice.String())
		assert.Equal(t, DefaultReorderLevel, item.ReorderLevel)
		assert.Nil(t, item.ExpiryDate)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		item, err := NewItem("", "TOOL-001", 1, decimal.Zero)

		require.Error(t, err)
		assert.Nil(t, item)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		item, err := NewItem("Hammer", "TOOL-001", -1, decimal.Zero)

		require.Error(t, err)
		assert.Nil(t, item)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		item, err := NewItem("Hammer", "TOOL-001", 1, decimal.RequireFromString("-0.01"))

		require.Error(t, err)
		assert.Nil(t, item)
	})
}

func TestClassify(t *testing.T) {
	today := time.Date(2026, 3, 15, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name         string
		quantity     int
		reorderLevel int
		expiryDate   *time.Time
		want         StockStatus
	}{
		{"above reorder level", 50, 10, nil, StatusInStock},
		{"equal to reorder level", 10, 10, nil, StatusLowStock},
		{"below reorder level", 3, 10, nil, StatusLowStock},
		{"zero quantity", 0, 0, nil, StatusLowStock},
		{"expired yesterday", 50, 10, date(2026, 3, 14), StatusExpired},
		{"expires today is not expired", 50, 10, date(2026, 3, 15), StatusInStock},
		{"expires tomorrow", 50, 10, date(2026, 3, 16), StatusInStock},
		{"expiry wins over low stock", 3, 10, date(2026, 1, 1), StatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.quantity, tt.reorderLevel, tt.expiryDate, today)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestItem_StockValue(t *testing.T) {
	item, err := NewItem("Widget", "WID-1", 5, decimal.RequireFromString("2.00"))
	require.NoError(t, err)

	assert.Equal(t, "10.00", item.StockValue().StringFixed(2))
}

func TestItem_IsLowStock(t *testing.T) {
	item, err := NewItem("Widget", "WID-1", 5, decimal.Zero)
	require.NoError(t, err)
	item.ReorderLevel = 5

	assert.True(t, item.IsLowStock())

	item.Quantity = 6
	assert.False(t, item.IsLowStock())
}

func TestItem_IsExpired(t *testing.T) {
	today := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)

	item, err := NewItem("Milk", "MILK-1", 5, decimal.Zero)
	require.NoError(t, err)

	assert.False(t, item.IsExpired(today))

	item.ExpiryDate = date(2026, 3, 10)
	assert.True(t, item.IsExpired(today))
}
