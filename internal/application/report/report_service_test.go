package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/invento/backend/internal/domain/inventory"
	"github.com/invento/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// MockItemRepository is a mock implementation of inventory.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindBySKU(ctx context.Context, sku string) (*inventory.Item, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Item, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindForReport(ctx context.Context, query inventory.ReportQuery) ([]inventory.Item, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindLowStock(ctx context.Context) ([]inventory.Item, error) {
	args := m.Called(ctx)
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *inventory.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) ExistsBySKU(ctx context.Context, sku string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, sku, excludeID)
	return args.Bool(0), args.Error(1)
}

func testItem(t *testing.T, name, sku, category string, quantity int, price string) inventory.Item {
	t.Helper()
	item, err := inventory.NewItem(name, sku, quantity, decimal.RequireFromString(price))
	require.NoError(t, err)
	item.Category = category
	return *item
}

func TestParseQuery(t *testing.T) {
	t.Run("parses dates and status", func(t *testing.T) {
		query, err := ParseQuery("2026-01-01", "2026-12-31", "low_stock")

		require.NoError(t, err)
		assert.Equal(t, "2026-01-01", query.StartDate.Format("2006-01-02"))
		assert.Equal(t, "2026-12-31", query.EndDate.Format("2006-01-02"))
		assert.Equal(t, inventory.StatusFilterLowStock, query.Status)
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		_, err := ParseQuery("01/01/2026", "", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid date format")
	})

	t.Run("ignores unknown status", func(t *testing.T) {
		query, err := ParseQuery("", "", "discontinued")
		require.NoError(t, err)
		assert.Empty(t, query.Status)
	})
}

func TestReportService_Download(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects unsupported formats", func(t *testing.T) {
		svc := NewReportService(new(MockItemRepository), zap.NewNop())

		_, err := svc.Download(ctx, "pdf", inventory.ReportQuery{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid format: pdf. Use csv or xlsx.")
	})

	t.Run("exports csv with headers and rows", func(t *testing.T) {
		repo := new(MockItemRepository)
		items := []inventory.Item{
			testItem(t, `Nails, "galvanized"`, "NAIL-1", "Hardware", 500, "0.05"),
			testItem(t, "Hammer", "TOOL-001", "Tools", 25, "9.99"),
		}
		repo.On("FindForReport", ctx, mock.AnythingOfType("inventory.ReportQuery")).Return(items, nil)

		svc := NewReportService(repo, zap.NewNop())
		file, err := svc.Download(ctx, "csv", inventory.ReportQuery{})

		require.NoError(t, err)
		assert.Equal(t, "text/csv", file.ContentType)
		assert.True(t, strings.HasPrefix(file.Filename, "inventory_report_"))
		assert.True(t, strings.HasSuffix(file.Filename, ".csv"))

		records, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, reportColumns, records[0])
		assert.Equal(t, `Nails, "galvanized"`, records[1][0])
		assert.Equal(t, "NAIL-1", records[1][1])
		assert.Equal(t, "500", records[1][3])
		assert.Equal(t, "0.05", records[1][4])
		assert.Equal(t, "9.99", records[2][4])
	})

	t.Run("empty record set still yields a valid csv", func(t *testing.T) {
		repo := new(MockItemRepository)
		repo.On("FindForReport", ctx, mock.AnythingOfType("inventory.ReportQuery")).Return([]inventory.Item{}, nil)

		svc := NewReportService(repo, zap.NewNop())
		file, err := svc.Download(ctx, "csv", inventory.ReportQuery{Status: inventory.StatusFilterExpired})

		require.NoError(t, err)
		records, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, reportColumns, records[0])
	})

	t.Run("exports xlsx with the same columns", func(t *testing.T) {
		repo := new(MockItemRepository)
		expiry := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
		item := testItem(t, "Milk", "MILK-1", "Dairy", 12, "1.50")
		item.ExpiryDate = &expiry
		repo.On("FindForReport", ctx, mock.AnythingOfType("inventory.ReportQuery")).Return([]inventory.Item{item}, nil)

		svc := NewReportService(repo, zap.NewNop())
		file, err := svc.Download(ctx, "xlsx", inventory.ReportQuery{})

		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(file.Filename, ".xlsx"))

		book, err := excelize.OpenReader(bytes.NewReader(file.Data))
		require.NoError(t, err)
		defer book.Close()

		rows, err := book.GetRows(xlsxSheetName)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, reportColumns, rows[0])
		assert.Equal(t, "Milk", rows[1][0])
		assert.Equal(t, "12", rows[1][3])
		assert.Equal(t, "2026-06-30", rows[1][7])
	})
}

func TestReportService_Summary(t *testing.T) {
	ctx := context.Background()

	t.Run("computes filtered aggregates", func(t *testing.T) {
		repo := new(MockItemRepository)
		expired := testItem(t, "Milk", "MILK-1", "Dairy", 100, "1.50")
		past := time.Now().AddDate(0, 0, -3)
		expired.ExpiryDate = &past

		items := []inventory.Item{
			testItem(t, "Widget", "WID-1", "", 5, "2.00"),
			expired,
		}
		repo.On("FindForReport", ctx, mock.AnythingOfType("inventory.ReportQuery")).Return(items, nil)

		svc := NewReportService(repo, zap.NewNop())
		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		summary, err := svc.Summary(ctx, inventory.ReportQuery{StartDate: &start, Status: ""})

		require.NoError(t, err)
		assert.Equal(t, int64(2), summary.TotalItems)
		assert.Equal(t, "160.00", summary.TotalValue.StringFixed(2))
		assert.Equal(t, int64(1), summary.LowStockCount)
		assert.Equal(t, int64(1), summary.ExpiredCount)
		assert.Equal(t, "2026-01-01", summary.Filters.StartDate)
		assert.Empty(t, summary.Filters.Status)
	})

	t.Run("zero values on an empty store", func(t *testing.T) {
		repo := new(MockItemRepository)
		repo.On("FindForReport", ctx, mock.AnythingOfType("inventory.ReportQuery")).Return([]inventory.Item{}, nil)

		svc := NewReportService(repo, zap.NewNop())
		summary, err := svc.Summary(ctx, inventory.ReportQuery{})

		require.NoError(t, err)
		assert.Zero(t, summary.TotalItems)
		assert.True(t, summary.TotalValue.IsZero())
	})
}
