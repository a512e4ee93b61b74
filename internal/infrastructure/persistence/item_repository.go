package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/invento/backend/internal/domain/inventory"
	"github.com/invento/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormItemRepository implements inventory.ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an inventory item by its ID
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindBySKU finds an inventory item by its SKU
func (r *GormItemRepository) FindBySKU(ctx context.Context, sku string) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.db.WithContext(ctx).First(&item, "sku = ?", sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAll returns items matching the filter
func (r *GormItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Item, error) {
	var items []inventory.Item
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.Item{}), filter)
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindForReport returns items matching a report query in insertion order;
// export rows are not re-sorted. Date bounds are inclusive calendar days on
// the creation timestamp.
func (r *GormItemRepository) FindForReport(ctx context.Context, query inventory.ReportQuery) ([]inventory.Item, error) {
	var items []inventory.Item
	q := r.applyReportQuery(r.db.WithContext(ctx).Model(&inventory.Item{}), query)
	if err := q.Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindLowStock returns items at or below their reorder level
func (r *GormItemRepository) FindLowStock(ctx context.Context) ([]inventory.Item, error) {
	var items []inventory.Item
	if err := r.db.WithContext(ctx).
		Where("quantity <= reorder_level").
		Order("name ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates an inventory item. A SKU collision surfaces as
// shared.ErrAlreadyExists.
func (r *GormItemRepository) Save(ctx context.Context, item *inventory.Item) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete removes an inventory item by ID
func (r *GormItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.Item{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the number of items matching the filter
func (r *GormItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&inventory.Item{}), filter.Search)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsBySKU reports whether another item already uses the SKU. excludeID
// carves out the item being updated; pass uuid.Nil on create.
func (r *GormItemRepository) ExistsBySKU(ctx context.Context, sku string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&inventory.Item{}).Where("sku = ?", sku)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter.Search)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

func (r *GormItemRepository) applySearch(query *gorm.DB, search string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" {
		return query
	}
	pattern := "%" + strings.ToLower(search) + "%"
	return query.Where(
		"LOWER(name) LIKE ? OR LOWER(sku) LIKE ? OR LOWER(supplier) LIKE ?",
		pattern, pattern, pattern,
	)
}

func (r *GormItemRepository) applyReportQuery(q *gorm.DB, query inventory.ReportQuery) *gorm.DB {
	if query.StartDate != nil {
		start := startOfDay(*query.StartDate)
		q = q.Where("created_at >= ?", start)
	}
	if query.EndDate != nil {
		end := startOfDay(*query.EndDate).AddDate(0, 0, 1)
		q = q.Where("created_at < ?", end)
	}

	today := startOfDay(time.Now().UTC())
	switch query.Status {
	case inventory.StatusFilterLowStock:
		q = q.Where("quantity <= reorder_level")
	case inventory.StatusFilterExpired:
		q = q.Where("expiry_date IS NOT NULL AND expiry_date < ?", today)
	case inventory.StatusFilterInStock:
		q = q.Where("quantity > reorder_level")
	}

	return q
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Ensure GormItemRepository implements inventory.ItemRepository
var _ inventory.ItemRepository = (*GormItemRepository)(nil)
