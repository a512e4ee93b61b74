package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/invento/backend/internal/domain/identity"
	"github.com/invento/backend/internal/domain/inventory"
	"go.uber.org/zap"
)

const adminLookupTimeout = 10 * time.Second

// AlertService composes and dispatches the operational emails: low stock
// alerts to admins, welcome mail on registration and login alerts. Every
// dispatch is fire-and-forget; a notifier outage never surfaces to the
// triggering operation.
type AlertService struct {
	notifier Notifier
	users    identity.UserRepository
	logger   *zap.Logger
}

// NewAlertService creates a new AlertService
func NewAlertService(notifier Notifier, users identity.UserRepository, logger *zap.Logger) *AlertService {
	return &AlertService{
		notifier: notifier,
		users:    users,
		logger:   logger,
	}
}

// LowStockAlert mails every admin that an item has fallen to or below its
// reorder level
func (s *AlertService) LowStockAlert(item *inventory.Item) {
	ctx, cancel := context.WithTimeout(context.Background(), adminLookupTimeout)
	defer cancel()

	admins, err := s.users.ListAdminEmails(ctx)
	if err != nil {
		s.logger.Error("failed to resolve admin recipients for low stock alert",
			zap.String("sku", item.SKU), zap.Error(err))
		return
	}
	if len(admins) == 0 {
		return
	}

	body := fmt.Sprintf(
		"Item: %s\nSKU: %s\nQuantity left: %d\nReorder Level: %d\n",
		item.Name, item.SKU, item.Quantity, item.ReorderLevel,
	)
	s.notifier.Notify("⚠️ Low Stock Alert", body, admins)

	s.logger.Info("low stock alert dispatched",
		zap.String("sku", item.SKU),
		zap.Int("quantity", item.Quantity),
		zap.Int("recipients", len(admins)))
}

// Welcome greets a newly registered user
func (s *AlertService) Welcome(user *identity.User) {
	body := fmt.Sprintf(
		"Hi %s,\n\nYour account has been created. You can now sign in and start tracking inventory.\n",
		user.FullName(),
	)
	s.notifier.Notify("Welcome to Invento", body, []string{user.Email})
}

// LoginAlert informs a user about a fresh sign-in to their account
func (s *AlertService) LoginAlert(user *identity.User, at time.Time) {
	body := fmt.Sprintf(
		"Hi %s,\n\nA new sign-in to your account was recorded at %s.\nIf this was not you, reset your password immediately.\n",
		user.FullName(), at.UTC().Format("2006-01-02 15:04:05 MST"),
	)
	s.notifier.Notify("New sign-in to your account", body, []string{user.Email})
}
