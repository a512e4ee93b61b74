package report

import (
	"context"
	"sort"
	"time"

	"github.com/invento/backend/internal/domain/inventory"
	"github.com/invento/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	trendDays        = 7
	topCategories    = 6
	uncategorized    = "Uncategorized"
	trendDateLayout  = "2006-01-02"
	trendLabelLayout = "Mon"
)

// DashboardService computes the aggregate statistics behind the dashboard
// endpoint. All computations run over the current record set; quantity history
// is not tracked, so the trend series uses current quantities.
type DashboardService struct {
	repo   inventory.ItemRepository
	logger *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(repo inventory.ItemRepository, logger *zap.Logger) *DashboardService {
	return &DashboardService{repo: repo, logger: logger}
}

// Stats computes the full dashboard payload as of now
func (s *DashboardService) Stats(ctx context.Context) (*report.DashboardStats, error) {
	return s.statsAt(ctx, time.Now())
}

func (s *DashboardService) statsAt(ctx context.Context, today time.Time) (*report.DashboardStats, error) {
	items, err := s.repo.FindForReport(ctx, inventory.ReportQuery{})
	if err != nil {
		return nil, err
	}

	stats := &report.DashboardStats{
		TotalItems:           int64(len(items)),
		TotalStockValue:      decimal.Zero,
		StockTrend:           stockTrend(items, today, trendDays),
		CategoryDistribution: categoryDistribution(items, topCategories),
	}

	for i := range items {
		item := &items[i]
		stats.TotalStockValue = stats.TotalStockValue.Add(item.StockValue())
		if item.IsLowStock() {
			stats.LowStockItems++
		}
		if item.IsExpired(today) {
			stats.ExpiredItems++
		}
	}

	return stats, nil
}

// stockTrend buckets the last days calendar days ending today, oldest first.
// Each bucket counts items created by the end of that day and sums their
// current quantities.
func stockTrend(items []inventory.Item, today time.Time, days int) []report.TrendBucket {
	buckets := make([]report.TrendBucket, 0, days)
	for offset := days - 1; offset >= 0; offset-- {
		day := today.AddDate(0, 0, -offset)
		end := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), day.Location())

		bucket := report.TrendBucket{
			Date: day.Format(trendDateLayout),
			Day:  day.Format(trendLabelLayout),
		}
		for i := range items {
			if !items[i].CreatedAt.After(end) {
				bucket.TotalItems++
				bucket.TotalQuantity += int64(items[i].Quantity)
			}
		}
		buckets = append(buckets, bucket)
	}
	return buckets
}

// categoryDistribution groups items by category, mapping blank categories to
// "Uncategorized", and returns the topN groups by count
func categoryDistribution(items []inventory.Item, topN int) []report.CategoryCount {
	counts := make(map[string]int64)
	for i := range items {
		category := items[i].Category
		if category == "" {
			category = uncategorized
		}
		counts[category]++
	}

	distribution := make([]report.CategoryCount, 0, len(counts))
	for category, count := range counts {
		distribution = append(distribution, report.CategoryCount{CategoryName: category, Count: count})
	}
	sort.Slice(distribution, func(i, j int) bool {
		if distribution[i].Count != distribution[j].Count {
			return distribution[i].Count > distribution[j].Count
		}
		return distribution[i].CategoryName < distribution[j].CategoryName
	})

	if len(distribution) > topN {
		distribution = distribution[:topN]
	}
	return distribution
}
