package report

import (
	"context"
	"testing"
	"time"

	"github.com/invento/backend/internal/domain/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDashboardService_Stats(t *testing.T) {
	ctx := context.Background()
	today := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("empty store yields zeroed stats with full trend", func(t *testing.T) {
		repo := new(MockItemRepository)
		repo.On("FindForReport", ctx, mock.AnythingOfType("inventory.ReportQuery")).Return([]inventory.Item{}, nil)

		svc := NewDashboardService(repo, zap.NewNop())
		stats, err := svc.statsAt(ctx, today)

		require.NoError(t, err)
		assert.Zero(t, stats.TotalItems)
		assert.True(t, stats.TotalStockValue.IsZero())
		assert.Zero(t, stats.LowStockItems)
		assert.Zero(t, stats.ExpiredItems)
		require.Len(t, stats.StockTrend, 7)
		for _, bucket := range stats.StockTrend {
			assert.Zero(t, bucket.TotalItems)
			assert.Zero(t, bucket.TotalQuantity)
		}
		assert.Empty(t, stats.CategoryDistribution)
	})

	t.Run("computes aggregates over the record set", func(t *testing.T) {
		repo := new(MockItemRepository)

		low := testItem(t, "Widget", "WID-1", "Tools", 5, "2.00")
		low.CreatedAt = today.AddDate(0, 0, -10)

		expired := testItem(t, "Milk", "MILK-1", "Dairy", 100, "1.50")
		past := today.AddDate(0, 0, -1)
		expired.ExpiryDate = &past
		expired.CreatedAt = today.AddDate(0, 0, -2)

		healthy := testItem(t, "Bolt", "BOLT-1", "", 80, "0.10")
		healthy.CreatedAt = today

		repo.On("FindForReport", ctx, mock.AnythingOfType("inventory.ReportQuery")).
			Return([]inventory.Item{low, expired, healthy}, nil)

		svc := NewDashboardService(repo, zap.NewNop())
		stats, err := svc.statsAt(ctx, today)

		require.NoError(t, err)
		assert.Equal(t, int64(3), stats.TotalItems)
		assert.Equal(t, "168.00", stats.TotalStockValue.StringFixed(2))
		assert.Equal(t, int64(1), stats.LowStockItems)
		assert.Equal(t, int64(1), stats.ExpiredItems)
	})

	t.Run("trend buckets are oldest first and cumulative by creation date", func(t *testing.T) {
		repo := new(MockItemRepository)

		old := testItem(t, "Widget", "WID-1", "Tools", 5, "2.00")
		old.CreatedAt = today.AddDate(0, 0, -30)

		recent := testItem(t, "Bolt", "BOLT-1", "", 80, "0.10")
		recent.CreatedAt = today.AddDate(0, 0, -1)

		repo.On("FindForReport", ctx, mock.AnythingOfType("inventory.ReportQuery")).
			Return([]inventory.Item{old, recent}, nil)

		svc := NewDashboardService(repo, zap.NewNop())
		stats, err := svc.statsAt(ctx, today)

		require.NoError(t, err)
		require.Len(t, stats.StockTrend, 7)

		first := stats.StockTrend[0]
		assert.Equal(t, "2026-03-09", first.Date)
		assert.Equal(t, "Mon", first.Day)
		assert.Equal(t, int64(1), first.TotalItems)
		assert.Equal(t, int64(5), first.TotalQuantity)

		last := stats.StockTrend[6]
		assert.Equal(t, "2026-03-15", last.Date)
		assert.Equal(t, int64(2), last.TotalItems)
		assert.Equal(t, int64(85), last.TotalQuantity)
	})

	t.Run("category distribution maps blanks and truncates", func(t *testing.T) {
		repo := new(MockItemRepository)

		items := make([]inventory.Item, 0)
		categories := []string{"A", "A", "A", "B", "B", "", "", "C", "D", "E", "F", "G"}
		for i, category := range categories {
			item := testItem(t, "Item", "SKU-"+string(rune('a'+i)), category, 1, "1.00")
			items = append(items, item)
		}
		repo.On("FindForReport", ctx, mock.AnythingOfType("inventory.ReportQuery")).Return(items, nil)

		svc := NewDashboardService(repo, zap.NewNop())
		stats, err := svc.statsAt(ctx, today)

		require.NoError(t, err)
		require.Len(t, stats.CategoryDistribution, 6)
		assert.Equal(t, "A", stats.CategoryDistribution[0].CategoryName)
		assert.Equal(t, int64(3), stats.CategoryDistribution[0].Count)
		assert.Equal(t, "B", stats.CategoryDistribution[1].CategoryName)

		names := make([]string, 0)
		for _, entry := range stats.CategoryDistribution {
			names = append(names, entry.CategoryName)
		}
		assert.Contains(t, names, "Uncategorized")
	})
}
