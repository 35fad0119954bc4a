package inventory

import (
	"context"

	domainInventory "bookstore-management/internal/domain/inventory"
	"bookstore-management/internal/logger"
	"bookstore-management/internal/observability/metrics"
	"bookstore-management/internal/validator"
	appErrors "bookstore-management/pkg/errors"
	"bookstore-management/pkg/utils"

	"go.uber.org/zap"
)

var ErrNegativeQuantity = appErrors.Validation("Stock and price values cannot be negative.")

// Service implements the CRUD use cases of one inventory collection.
type Service struct {
	repo     domainInventory.Repository
	notifier LowStockNotifier
}

// NewService binds a service to repo. A nil notifier falls back to LogNotifier.
func NewService(repo domainInventory.Repository, notifier LowStockNotifier) *Service {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Service{repo: repo, notifier: notifier}
}

func (s *Service) Collection() domainInventory.Collection {
	return s.repo.Collection()
}

func (s *Service) Create(ctx context.Context, req *ItemRequest) (*ItemResponse, error) {
	req.upgradeLegacy()

	// Presence is judged on sanitized text so markup-only values count as empty.
	title, author, isbn := sanitize(req.Title), sanitize(req.Author), sanitize(req.ISBN)
	if err := validator.RequiredFields(
		validator.Required("title", title),
		validator.Required("author", author),
		validator.Required("isbn", isbn),
		validator.Required("totalStock", req.TotalStock),
		validator.Required("minimumStock", req.MinimumStock),
		validator.Required("costPrice", req.CostPrice),
		validator.Required("salePrice", req.SalePrice),
	); err != nil {
		return nil, err
	}

	if !validator.IsValidISBN(*isbn) {
		return nil, appErrors.ErrInvalidISBN
	}
	if err := checkQuantities(req); err != nil {
		return nil, err
	}

	item := &domainInventory.Item{
		Title:           *title,
		Author:          *author,
		ISBN:            *isbn,
		PublicationDate: req.PublicationDate.ptr(),
		Description:     sanitizeText(req.Description),
		CostPrice:       *req.CostPrice,
		SalePrice:       *req.SalePrice,
		Tax:             req.Tax,
		TotalStock:      *req.TotalStock,
		MinimumStock:    *req.MinimumStock,
		LastRestockDate: req.LastRestockDate.ptr(),
		Category:        sanitize(req.Category),
		Publisher:       sanitize(req.Publisher),
	}
	if req.ReservedStock != nil {
		item.ReservedStock = *req.ReservedStock
	}
	if !item.HasConsistentStock() {
		return nil, domainInventory.ErrReservedExceedsTotal
	}

	collection := s.Collection()
	if err := s.repo.Create(ctx, item); err != nil {
		logger.Warn("Inventory item rejected",
			zap.String("collection", collection.Plural),
			zap.String("isbn", item.ISBN),
			zap.Error(err),
			zap.String("event", "item_create_failed"),
		)
		return nil, err
	}

	logger.Info("Inventory item created",
		zap.String("collection", collection.Plural),
		zap.Uint("item_id", item.ID),
		zap.String("isbn", item.ISBN),
		zap.String("event", "item_created"),
	)

	s.notifyIfLow(ctx, item)
	return ToItemResponse(item), nil
}

func (s *Service) Get(ctx context.Context, itemID uint) (*ItemResponse, error) {
	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

func (s *Service) List(ctx context.Context) ([]*ItemResponse, error) {
	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToItemResponses(items), nil
}

// Update applies a partial update; AvailableStock follows TotalStock and ReservedStock.
func (s *Service) Update(ctx context.Context, itemID uint, req *ItemRequest) error {
	req.upgradeLegacy()

	patch, err := buildPatch(req)
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		return appErrors.ErrEmptyUpdate
	}

	if err := s.repo.Update(ctx, itemID, patch); err != nil {
		return err
	}

	collection := s.Collection()
	logger.Info("Inventory item updated",
		zap.String("collection", collection.Plural),
		zap.Uint("item_id", itemID),
		zap.String("event", "item_updated"),
	)

	if patch.TouchesStock() || patch.MinimumStock != nil {
		item, err := s.repo.GetByID(ctx, itemID)
		if err != nil {
			logger.Warn("Could not reload item for stock check",
				zap.String("collection", collection.Plural),
				zap.Uint("item_id", itemID),
				zap.Error(err),
			)
			return nil
		}
		s.notifyIfLow(ctx, item)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, itemID uint) error {
	if err := s.repo.Delete(ctx, itemID); err != nil {
		return err
	}

	logger.Info("Inventory item deleted",
		zap.String("collection", s.Collection().Plural),
		zap.Uint("item_id", itemID),
		zap.String("event", "item_deleted"),
	)
	return nil
}

// notifyIfLow never fails the request; delivery problems are only logged.
func (s *Service) notifyIfLow(ctx context.Context, item *domainInventory.Item) {
	if !item.IsLowStock() {
		return
	}
	event := NewLowStockEvent(s.Collection(), item)
	metrics.ObserveLowStock(event.Collection)
	if err := s.notifier.NotifyLowStock(ctx, event); err != nil {
		logger.Error("Failed to publish low stock event",
			zap.String("collection", event.Collection),
			zap.Uint("item_id", event.ID),
			zap.Error(err),
		)
	}
}

func buildPatch(req *ItemRequest) (*domainInventory.Patch, error) {
	title, author, isbn := sanitize(req.Title), sanitize(req.Author), sanitize(req.ISBN)

	var provided []validator.Field
	if title != nil {
		provided = append(provided, validator.Required("title", title))
	}
	if author != nil {
		provided = append(provided, validator.Required("author", author))
	}
	if isbn != nil {
		provided = append(provided, validator.Required("isbn", isbn))
	}
	if err := validator.RequiredFields(provided...); err != nil {
		return nil, err
	}
	if err := checkQuantities(req); err != nil {
		return nil, err
	}
	if req.TotalStock != nil && req.ReservedStock != nil && *req.ReservedStock > *req.TotalStock {
		return nil, domainInventory.ErrReservedExceedsTotal
	}

	patch := &domainInventory.Patch{
		Title:           title,
		Author:          author,
		PublicationDate: req.PublicationDate.ptr(),
		Description:     sanitizeText(req.Description),
		CostPrice:       req.CostPrice,
		SalePrice:       req.SalePrice,
		Tax:             req.Tax,
		TotalStock:      req.TotalStock,
		ReservedStock:   req.ReservedStock,
		MinimumStock:    req.MinimumStock,
		LastRestockDate: req.LastRestockDate.ptr(),
		Category:        sanitize(req.Category),
		Publisher:       sanitize(req.Publisher),
	}
	if isbn != nil {
		if !validator.IsValidISBN(*isbn) {
			return nil, appErrors.ErrInvalidISBN
		}
		patch.ISBN = isbn
	}
	return patch, nil
}

func checkQuantities(req *ItemRequest) error {
	for _, n := range []*int{req.TotalStock, req.ReservedStock, req.MinimumStock} {
		if n != nil && *n < 0 {
			return ErrNegativeQuantity
		}
	}
	for _, f := range []*float64{req.CostPrice, req.SalePrice, req.Tax} {
		if f != nil && *f < 0 {
			return ErrNegativeQuantity
		}
	}
	return nil
}

func sanitize(s *string) *string {
	if s == nil {
		return nil
	}
	return utils.StringPtr(utils.SanitizeString(*s))
}

func sanitizeText(s *string) *string {
	if s == nil {
		return nil
	}
	return utils.StringPtr(utils.SanitizeText(*s))
}
