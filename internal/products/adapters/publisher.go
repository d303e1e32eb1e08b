package adapters

import (
	"context"

	"go-shop/internal/products/domain"
	"go-shop/pkg/events"
	"go-shop/pkg/logger"
	"go-shop/pkg/rabbitmq"
)

// RabbitMQPublisher implements EventPublisher using RabbitMQ
type RabbitMQPublisher struct {
	publisher *rabbitmq.Publisher
	log       *logger.Logger
}

// NewRabbitMQPublisher creates a new RabbitMQ event publisher
func NewRabbitMQPublisher(publisher *rabbitmq.Publisher, log *logger.Logger) *RabbitMQPublisher {
	return &RabbitMQPublisher{
		publisher: publisher,
		log:       log,
	}
}

// PublishProductCreated publishes a product created event
func (p *RabbitMQPublisher) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	traceID := logger.GetTraceID(ctx)

	event := events.NewProductCreatedEvent(
		product.ID,
		product.Name,
		product.SKU,
		product.Price,
		product.Quantity,
		product.CreatedAt,
		traceID,
	)

	return p.publisher.Publish(ctx, events.RoutingKeyProductCreated, event)
}

// PublishInventoryAdjusted publishes an inventory adjusted event
func (p *RabbitMQPublisher) PublishInventoryAdjusted(ctx context.Context, productID uint, delta, newQuantity int) error {
	traceID := logger.GetTraceID(ctx)

	event := events.NewInventoryAdjustedEvent(productID, delta, newQuantity, traceID)

	return p.publisher.Publish(ctx, events.RoutingKeyInventoryAdjusted, event)
}
