package inventory

import (
	"time"

	"github.com/invento/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DefaultReorderLevel is applied when a payload omits the reorder level.
const DefaultReorderLevel = 10

// MaxUnitPrice is the exclusive upper bound for unit prices.
var MaxUnitPrice = decimal.RequireFromString("100000000")

// StockStatus classifies an item's stock state
type StockStatus string

const (
	StatusInStock  StockStatus = "In Stock"
	StatusLowStock StockStatus = "Low Stock"
	StatusExpired  StockStatus = "Expired"
)

// Item represents an inventory item.
// It is the aggregate root for inventory operations; SKU is the unique
// business identifier, enforced by a unique index at the storage layer.
type Item struct {
	shared.BaseEntity
	Name         string          `gorm:"size:255;not null"`
	SKU          string          `gorm:"size:100;not null;uniqueIndex:idx_inventory_items_sku"`
	Category     string          `gorm:"size:100"`
	Quantity     int             `gorm:"not null;default:0"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Supplier     string          `gorm:"size:255"`
	ReorderLevel int             `gorm:"not null;default:10"`
	ExpiryDate   *time.Time      `gorm:"type:date"`
	Description  string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "inventory_items"
}

// NewItem creates a new inventory item. Callers are expected to have run the
// payload through the application-layer validator first; this constructor only
// guards the invariants that must never be violated.
func NewItem(name, sku string, quantity int, unitPrice decimal.Decimal) (*Item, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &Item{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		SKU:          sku,
		Quantity:     quantity,
		UnitPrice:    unitPrice.Round(2),
		ReorderLevel: DefaultReorderLevel,
	}, nil
}

// IsLowStock returns true if quantity is at or below the reorder level
func (i *Item) IsLowStock() bool {
	return i.Quantity <= i.ReorderLevel
}

// IsExpired returns true if the expiry date has passed
func (i *Item) IsExpired(today time.Time) bool {
	return isExpired(i.ExpiryDate, today)
}

// Status returns the classified stock status as of today
func (i *Item) Status(today time.Time) StockStatus {
	return Classify(i.Quantity, i.ReorderLevel, i.ExpiryDate, today)
}

// StockValue returns quantity * unit price as an exact decimal
func (i *Item) StockValue() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Classify determines the stock status for the given fields. Expiry takes
// precedence over low stock when both hold.
func Classify(quantity, reorderLevel int, expiryDate *time.Time, today time.Time) StockStatus {
	if isExpired(expiryDate, today) {
		return StatusExpired
	}
	if quantity <= reorderLevel {
		return StatusLowStock
	}
	return StatusInStock
}

// isExpired compares calendar dates only; an item expiring today is not yet
// expired.
func isExpired(expiryDate *time.Time, today time.Time) bool {
	if expiryDate == nil {
		return false
	}
	ey, em, ed := expiryDate.Date()
	ty, tm, td := today.Date()
	expiry := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	day := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return expiry.Before(day)
}
