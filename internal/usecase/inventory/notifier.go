package inventory

import (
	"context"
	"time"

	domainInventory "bookstore-management/internal/domain/inventory"
	"bookstore-management/internal/logger"

	"go.uber.org/zap"
)

// LowStockEvent is emitted when an item's available units reach its minimum.
type LowStockEvent struct {
	Collection     string    `json:"collection"`
	ID             uint      `json:"id"`
	ISBN           string    `json:"isbn"`
	Title          string    `json:"title"`
	AvailableStock int       `json:"availableStock"`
	MinimumStock   int       `json:"minimumStock"`
	OccurredAt     time.Time `json:"occurredAt"`
}

func NewLowStockEvent(c domainInventory.Collection, item *domainInventory.Item) LowStockEvent {
	return LowStockEvent{
		Collection:     c.Plural,
		ID:             item.ID,
		ISBN:           item.ISBN,
		Title:          item.Title,
		AvailableStock: item.AvailableStock,
		MinimumStock:   item.MinimumStock,
		OccurredAt:     time.Now().UTC(),
	}
}

type LowStockNotifier interface {
	NotifyLowStock(ctx context.Context, event LowStockEvent) error
}

// LogNotifier records low-stock events in the application log.
type LogNotifier struct{}

func (LogNotifier) NotifyLowStock(_ context.Context, event LowStockEvent) error {
	logger.Warn("Inventory below minimum stock",
		zap.String("collection", event.Collection),
		zap.Uint("item_id", event.ID),
		zap.String("isbn", event.ISBN),
		zap.Int("available_stock", event.AvailableStock),
		zap.Int("minimum_stock", event.MinimumStock),
		zap.String("event", "low_stock"),
	)
	return nil
}
