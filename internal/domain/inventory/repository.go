package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/invento/backend/internal/domain/shared"
)

// ItemRepository defines the interface for inventory item persistence
type ItemRepository interface {
	// FindByID finds an item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// FindBySKU finds an item by its SKU (exact, case-sensitive match)
	FindBySKU(ctx context.Context, sku string) (*Item, error)

	// FindAll finds items matching the filter; Search matches name, SKU and
	// supplier case-insensitively
	FindAll(ctx context.Context, filter shared.Filter) ([]Item, error)

	// FindForReport finds items matching the report query in default order
	FindForReport(ctx context.Context, query ReportQuery) ([]Item, error)

	// FindLowStock finds items with quantity at or below their reorder level
	FindLowStock(ctx context.Context) ([]Item, error)

	// Save creates or updates an item
	Save(ctx context.Context, item *Item) error

	// Delete hard-deletes an item
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts items matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsBySKU checks whether another item already uses the SKU; excludeID
	// is skipped so updates do not collide with themselves
	ExistsBySKU(ctx context.Context, sku string, excludeID uuid.UUID) (bool, error)
}

// Report status filter values. The in_stock filter is purely the quantity
// comparison; it does not exclude expired rows.
const (
	StatusFilterInStock  = "in_stock"
	StatusFilterLowStock = "low_stock"
	StatusFilterExpired  = "expired"
)

// ReportQuery bounds a report or summary to a created_at window and an
// optional classified status.
type ReportQuery struct {
	StartDate *time.Time
	EndDate   *time.Time
	Status    string // "", "in_stock", "low_stock" or "expired"
}
