package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/invento/backend/internal/domain/identity"
	"github.com/invento/backend/internal/domain/inventory"
	"github.com/invento/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DailyReportService composes the daily stock summary and mails it to every
// admin. The scheduler triggers it once a day; it can also be invoked on
// demand.
type DailyReportService struct {
	items    inventory.ItemRepository
	users    identity.UserRepository
	notifier Notifier
	logger   *zap.Logger
}

// NewDailyReportService creates a new DailyReportService
func NewDailyReportService(items inventory.ItemRepository, users identity.UserRepository, notifier Notifier, logger *zap.Logger) *DailyReportService {
	return &DailyReportService{
		items:    items,
		users:    users,
		notifier: notifier,
		logger:   logger,
	}
}

// Run builds and sends the daily inventory report
func (s *DailyReportService) Run(ctx context.Context) error {
	total, err := s.items.Count(ctx, shared.Filter{})
	if err != nil {
		return err
	}
	lowStock, err := s.items.FindLowStock(ctx)
	if err != nil {
		return err
	}

	admins, err := s.users.ListAdminEmails(ctx)
	if err != nil {
		return err
	}
	if len(admins) == 0 {
		s.logger.Warn("no admin users found, skipping daily report")
		return nil
	}

	body := composeDailyReport(total, lowStock)
	s.notifier.Notify("📊 Daily Inventory Report", body, admins)

	s.logger.Info("daily inventory report dispatched",
		zap.Int64("total_items", total),
		zap.Int("low_stock_items", len(lowStock)),
		zap.Int("recipients", len(admins)))
	return nil
}

func composeDailyReport(totalItems int64, lowStock []inventory.Item) string {
	var b strings.Builder

	b.WriteString("📊 DAILY INVENTORY REPORT\n")
	b.WriteString("========================\n\n")
	fmt.Fprintf(&b, "Total Items in Inventory: %d\n", totalItems)
	fmt.Fprintf(&b, "Low Stock Items: %d\n\n", len(lowStock))

	if len(lowStock) == 0 {
		b.WriteString("✅ All items are sufficiently stocked!")
		return b.String()
	}

	b.WriteString("⚠️ LOW STOCK ITEMS:\n")
	b.WriteString(strings.Repeat("-", 40) + "\n")
	for i := range lowStock {
		item := &lowStock[i]
		fmt.Fprintf(&b, "• %s (SKU: %s)\n", item.Name, item.SKU)
		fmt.Fprintf(&b, "  Quantity: %d | Threshold: %d\n\n", item.Quantity, item.ReorderLevel)
	}
	return b.String()
}
