package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/models"
)

// Publisher delivers an encoded event. key groups events for ordering
// (the order id for order events).
type Publisher interface {
	Publish(ctx context.Context, key string, payload []byte) error
	Close() error
}

// PublishOrderPlaced encodes and publishes the order.placed event.
func PublishOrderPlaced(ctx context.Context, p Publisher, order *models.Order) error {
	payload, err := json.Marshal(models.NewOrderPlacedEvent(order))
	if err != nil {
		return fmt.Errorf("marshal order.placed: %w", err)
	}
	return p.Publish(ctx, order.ID.String(), payload)
}

// Noop discards events. Used when EVENTS_BACKEND=none.
type Noop struct{}

func (Noop) Publish(context.Context, string, []byte) error { return nil }
func (Noop) Close() error                                  { return nil }
