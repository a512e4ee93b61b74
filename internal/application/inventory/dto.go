package inventory

import (
	"time"

	"github.com/google/uuid"
	domain "github.com/invento/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// ItemResponse represents an inventory item in API responses. The legacy
// alias fields (category_name, supplier_name, price) are still emitted so
// older clients keep working; they mirror their canonical counterparts.
type ItemResponse struct {
	ID           uuid.UUID          `json:"id"`
	Name         string             `json:"name"`
	SKU          string             `json:"sku"`
	Category     string             `json:"category"`
	CategoryName string             `json:"category_name"`
	Supplier     string             `json:"supplier"`
	SupplierName string             `json:"supplier_name"`
	Quantity     int                `json:"quantity"`
	UnitPrice    decimal.Decimal    `json:"unit_price"`
	Price        decimal.Decimal    `json:"price"`
	ReorderLevel int                `json:"reorder_level"`
	ExpiryDate   *string            `json:"expiry_date"`
	Description  string             `json:"description"`
	IsLowStock   bool               `json:"is_low_stock"`
	IsExpired    bool               `json:"is_expired"`
	Status       domain.StockStatus `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// ListItemsFilter represents filter options for the item list
type ListItemsFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// NewItemResponse shapes a domain item for the API, classifying its status as
// of now
func NewItemResponse(item *domain.Item) *ItemResponse {
	return newItemResponseAt(item, time.Now())
}

func newItemResponseAt(item *domain.Item, today time.Time) *ItemResponse {
	var expiry *string
	if item.ExpiryDate != nil {
		formatted := item.ExpiryDate.Format("2006-01-02")
		expiry = &formatted
	}
	return &ItemResponse{
		ID:           item.ID,
		Name:         item.Name,
		SKU:          item.SKU,
		Category:     item.Category,
		CategoryName: item.Category,
		Supplier:     item.Supplier,
		SupplierName: item.Supplier,
		Quantity:     item.Quantity,
		UnitPrice:    item.UnitPrice,
		Price:        item.UnitPrice,
		ReorderLevel: item.ReorderLevel,
		ExpiryDate:   expiry,
		Description:  item.Description,
		IsLowStock:   item.IsLowStock(),
		IsExpired:    item.IsExpired(today),
		Status:       item.Status(today),
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

// NewItemResponses shapes a slice of domain items
func NewItemResponses(items []domain.Item) []ItemResponse {
	now := time.Now()
	responses := make([]ItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, *newItemResponseAt(&items[i], now))
	}
	return responses
}
