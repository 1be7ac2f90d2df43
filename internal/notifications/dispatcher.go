package notifications

import (
	"context"
	"fmt"

	"github.com/ziiziikids/ziizii-backend/internal/inventory"
	"github.com/ziiziikids/ziizii-backend/pkg/enums"
	"github.com/ziiziikids/ziizii-backend/pkg/logger"
)

// EventPublisher pushes low stock events to an external topic.
type EventPublisher interface {
	PublishJSON(ctx context.Context, topic, eventType string, payload any) (string, error)
}

// LowStockDispatcher receives alerts from the inventory service, persists a
// notification row, and optionally publishes an event. Both sides are
// best-effort: a failed publish does not undo the row, and errors only reach
// the caller for logging.
type LowStockDispatcher struct {
	service   Service
	logg      *logger.Logger
	publisher EventPublisher
	topic     string
}

// NewLowStockDispatcher builds the dispatcher. publisher may be nil when no
// event transport is configured.
func NewLowStockDispatcher(service Service, logg *logger.Logger, publisher EventPublisher, topic string) (*LowStockDispatcher, error) {
	if service == nil {
		return nil, fmt.Errorf("notifications service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &LowStockDispatcher{
		service:   service,
		logg:      logg,
		publisher: publisher,
		topic:     topic,
	}, nil
}

// NotifyLowStock implements the inventory notifier hook.
func (d *LowStockDispatcher) NotifyLowStock(ctx context.Context, alert inventory.LowStockAlert) error {
	notificationType := enums.NotificationTypeLowStock
	title := "Low stock"
	if alert.IsOutOfStock {
		notificationType = enums.NotificationTypeOutOfStock
		title = "Out of stock"
	}

	message := fmt.Sprintf("%s (%s) is down to %d units (threshold %d)",
		alert.ProductName, alert.SKU, alert.CurrentStock, alert.Threshold)
	variantID := alert.VariantID

	if _, err := d.service.Create(ctx, notificationType, title, message, &variantID); err != nil {
		d.logg.Error(ctx, "persist low stock notification", err)
		return err
	}

	if d.publisher == nil {
		return nil
	}
	if _, err := d.publisher.PublishJSON(ctx, d.topic, string(notificationType), alert); err != nil {
		// the stored row already carries the alert
		d.logg.Error(ctx, "publish low stock event", err)
	}
	return nil
}
