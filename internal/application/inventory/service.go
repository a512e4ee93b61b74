package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	domain "github.com/invento/backend/internal/domain/inventory"
	"github.com/invento/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LowStockAlerter receives best-effort low stock notifications after a
// successful write. Implementations must never propagate failures.
type LowStockAlerter interface {
	LowStockAlert(item *domain.Item)
}

// ItemService handles inventory item CRUD operations
type ItemService struct {
	repo    domain.ItemRepository
	alerter LowStockAlerter
	logger  *zap.Logger
}

// NewItemService creates a new ItemService
func NewItemService(repo domain.ItemRepository, alerter LowStockAlerter, logger *zap.Logger) *ItemService {
	return &ItemService{
		repo:    repo,
		alerter: alerter,
		logger:  logger,
	}
}

// Create validates and persists a new item from a raw client payload.
// Returns a *shared.ValidationError when any field check fails.
func (s *ItemService) Create(ctx context.Context, payload map[string]any) (*ItemResponse, error) {
	normalized := Normalize(payload)
	candidate, verr := Validate(normalized, nil, false)

	if candidate.SKU != "" {
		if err := s.checkSKUConflict(ctx, candidate.SKU, uuid.Nil, verr); err != nil {
			return nil, err
		}
	}
	if verr.HasErrors() {
		return nil, verr
	}

	candidate.BaseEntity = shared.NewBaseEntity()
	if err := s.repo.Save(ctx, candidate); err != nil {
		return nil, s.translateSaveError(err, candidate.SKU)
	}

	s.logger.Info("inventory item created",
		zap.String("item_id", candidate.ID.String()),
		zap.String("sku", candidate.SKU))

	s.dispatchLowStockAlert(candidate)

	return NewItemResponse(candidate), nil
}

// Update validates and persists changes to an existing item. With partial set,
// omitted fields keep their current values; otherwise the payload must carry
// every required field.
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, payload map[string]any, partial bool) (*ItemResponse, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	normalized := Normalize(payload)
	candidate, verr := Validate(normalized, existing, partial)

	if candidate.SKU != "" {
		if err := s.checkSKUConflict(ctx, candidate.SKU, existing.ID, verr); err != nil {
			return nil, err
		}
	}
	if verr.HasErrors() {
		return nil, verr
	}

	candidate.UpdatedAt = time.Now()
	if err := s.repo.Save(ctx, candidate); err != nil {
		return nil, s.translateSaveError(err, candidate.SKU)
	}

	s.dispatchLowStockAlert(candidate)

	return NewItemResponse(candidate), nil
}

// Delete hard-deletes an item
func (s *ItemService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// GetByID retrieves a single item
func (s *ItemService) GetByID(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewItemResponse(item), nil
}

// List returns a page of items ordered by creation time, newest first. Search
// matches name, SKU and supplier case-insensitively.
func (s *ItemService) List(ctx context.Context, listFilter ListItemsFilter) (*shared.Paginated[ItemResponse], error) {
	filter := shared.DefaultFilter()
	filter.Search = listFilter.Search
	if listFilter.Page > 0 {
		filter.Page = listFilter.Page
	}
	if listFilter.PageSize > 0 {
		filter.PageSize = listFilter.PageSize
	}

	items, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(NewItemResponses(items), total, filter.Page, filter.PageSize)
	return &page, nil
}

// checkSKUConflict is the fast-path duplicate check. The unique index on sku
// remains the authoritative guarantee; a race loser is caught again in
// translateSaveError.
func (s *ItemService) checkSKUConflict(ctx context.Context, sku string, excludeID uuid.UUID, verr *shared.ValidationError) error {
	exists, err := s.repo.ExistsBySKU(ctx, sku, excludeID)
	if err != nil {
		return err
	}
	if exists {
		verr.Add(FieldSKU, MsgSKUConflict(sku))
	}
	return nil
}

// translateSaveError maps a storage-level unique violation to the same
// structured SKU conflict a pre-check would have produced
func (s *ItemService) translateSaveError(err error, sku string) error {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) && domainErr.Code == shared.ErrAlreadyExists.Code {
		verr := shared.NewValidationError()
		verr.Add(FieldSKU, MsgSKUConflict(sku))
		return verr
	}
	return err
}

// dispatchLowStockAlert triggers the post-write low stock notification.
// Dispatch is fire-and-forget: it runs outside the request path and its
// failures never surface to the caller.
func (s *ItemService) dispatchLowStockAlert(item *domain.Item) {
	if s.alerter == nil || !item.IsLowStock() {
		return
	}
	snapshot := *item
	go s.alerter.LowStockAlert(&snapshot)
}
