package adapters

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"go-shop/pkg/events"
	"go-shop/pkg/logger"
	"go-shop/pkg/rabbitmq"
)

// InventoryAdjustedConsumer consumes InventoryAdjusted events from the
// product service
type InventoryAdjustedConsumer struct {
	consumer *rabbitmq.Consumer
	log      *logger.Logger
}

// NewInventoryAdjustedConsumer creates a new consumer for InventoryAdjusted events
func NewInventoryAdjustedConsumer(conn *rabbitmq.Connection, log *logger.Logger) (*InventoryAdjustedConsumer, error) {
	consumer, err := rabbitmq.NewConsumer(
		conn,
		"orders.inventory-adjusted", // queue name
		events.ExchangeProducts,     // exchange
		[]string{events.RoutingKeyInventoryAdjusted},
		log,
	)
	if err != nil {
		return nil, err
	}

	return &InventoryAdjustedConsumer{
		consumer: consumer,
		log:      log,
	}, nil
}

// Start starts consuming InventoryAdjusted events
func (c *InventoryAdjustedConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

func (c *InventoryAdjustedConsumer) handleMessage(ctx context.Context, body []byte) error {
	var event events.InventoryAdjustedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.log.WithContext(ctx).Error("failed to unmarshal InventoryAdjustedEvent",
			zap.Error(err),
		)
		return err
	}

	c.log.WithContext(ctx).Info("received InventoryAdjusted event",
		zap.Uint("product_id", event.Payload.ProductID),
		zap.Int("delta", event.Payload.Delta),
		zap.Int("new_quantity", event.Payload.NewQuantity),
		zap.String("trace_id", event.TraceID),
	)

	return nil
}
