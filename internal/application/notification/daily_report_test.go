package notification

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/invento/backend/internal/domain/inventory"
	"github.com/invento/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
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

func TestDailyReportService_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("reports low stock items to admins", func(t *testing.T) {
		hammer, err := inventory.NewItem("Hammer", "TOOL-001", 2, decimal.RequireFromString("9.99"))
		require.NoError(t, err)

		items := new(MockItemRepository)
		items.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(12), nil)
		items.On("FindLowStock", ctx).Return([]inventory.Item{*hammer}, nil)

		users := new(MockUserRepository)
		users.On("ListAdminEmails", ctx).Return([]string{"admin@example.com"}, nil)

		notifier := &recordingNotifier{}
		svc := NewDailyReportService(items, users, notifier, zap.NewNop())

		require.NoError(t, svc.Run(ctx))

		require.Equal(t, 1, notifier.count())
		assert.Equal(t, "📊 Daily Inventory Report", notifier.subjects[0])
		body := notifier.bodies[0]
		assert.Contains(t, body, "Total Items in Inventory: 12")
		assert.Contains(t, body, "Low Stock Items: 1")
		assert.Contains(t, body, "• Hammer (SKU: TOOL-001)")
		assert.Contains(t, body, "Quantity: 2 | Threshold: 10")
	})

	t.Run("reports a healthy inventory", func(t *testing.T) {
		items := new(MockItemRepository)
		items.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(3), nil)
		items.On("FindLowStock", ctx).Return([]inventory.Item{}, nil)

		users := new(MockUserRepository)
		users.On("ListAdminEmails", ctx).Return([]string{"admin@example.com"}, nil)

		notifier := &recordingNotifier{}
		svc := NewDailyReportService(items, users, notifier, zap.NewNop())

		require.NoError(t, svc.Run(ctx))
		assert.Contains(t, notifier.bodies[0], "All items are sufficiently stocked!")
	})

	t.Run("skips dispatch without admins", func(t *testing.T) {
		items := new(MockItemRepository)
		items.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(3), nil)
		items.On("FindLowStock", ctx).Return([]inventory.Item{}, nil)

		users := new(MockUserRepository)
		users.On("ListAdminEmails", ctx).Return([]string{}, nil)

		notifier := &recordingNotifier{}
		svc := NewDailyReportService(items, users, notifier, zap.NewNop())

		require.NoError(t, svc.Run(ctx))
		assert.Zero(t, notifier.count())
	})
}
