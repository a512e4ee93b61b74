package report

import (
	"github.com/shopspring/decimal"
)

// DashboardStats is the read model behind the dashboard endpoint
type DashboardStats struct {
	TotalItems           int64           `json:"total_items"`
	TotalStockValue      decimal.Decimal `json:"total_stock_value"`
	LowStockItems        int64           `json:"low_stock_items"`
	ExpiredItems         int64           `json:"expired_items"`
	StockTrend           []TrendBucket   `json:"stock_trend"`
	CategoryDistribution []CategoryCount `json:"category_distribution"`
}

// TrendBucket is one calendar day in the stock trend series. TotalItems counts
// records created on or before the bucket date; TotalQuantity sums their
// current quantities, a point-in-time approximation since quantity history is
// not tracked.
type TrendBucket struct {
	Date          string `json:"date"` // YYYY-MM-DD
	Day           string `json:"day"`  // short weekday label, e.g. "Mon"
	TotalItems    int64  `json:"total_items"`
	TotalQuantity int64  `json:"total_quantity"`
}

// CategoryCount is one slice of the category distribution
type CategoryCount struct {
	CategoryName string `json:"category_name"`
	Count        int64  `json:"count"`
}

// Summary provides filtered aggregate statistics for the report endpoints
type Summary struct {
	TotalItems    int64           `json:"total_items"`
	TotalValue    decimal.Decimal `json:"total_value"`
	LowStockCount int64           `json:"low_stock_count"`
	ExpiredCount  int64           `json:"expired_count"`
	Filters       AppliedFilters  `json:"filters_applied"`
}

// AppliedFilters echoes the filters a summary was computed under
type AppliedFilters struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Status    string `json:"status,omitempty"`
}
