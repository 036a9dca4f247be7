package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/Nhongkham198/pinCustomer/internal/domain/models"
	"github.com/Nhongkham198/pinCustomer/pkg/logger"
	wrap "github.com/Nhongkham198/pinCustomer/pkg/logger/wrapper"
	"github.com/Nhongkham198/pinCustomer/pkg/metrics"
	"github.com/Nhongkham198/pinCustomer/pkg/rabbit"
)

const (
	// Fanout exchanges. The thermal printer and chat-notification
	// collaborators bind their own queues; this service only publishes.
	OrdersExchange     = "orders_fanout"
	DeliveriesExchange = "deliveries_fanout"
)

type StorefrontBroker struct {
	client  *rabbit.RabbitMQ
	service string

	l logger.Logger
}

func NewStorefrontBroker(client *rabbit.RabbitMQ, service string, log logger.Logger) *StorefrontBroker {
	return &StorefrontBroker{
		client:  client,
		service: service,

		l: log,
	}
}

// Setup declares the fanout exchanges. Idempotent, called once on startup.
func (b *StorefrontBroker) Setup(ctx context.Context) error {
	const op = "StorefrontBroker.Setup"

	for _, exchange := range []string{OrdersExchange, DeliveriesExchange} {
		if err := b.client.Channel.ExchangeDeclare(
			exchange,
			"fanout",
			true,  // durable
			false, // auto-delete
			false, // internal
			false, // no-wait
			nil,
		); err != nil {
			return wrap.Error(ctx, fmt.Errorf("%s: declare %s: %w", op, exchange, err))
		}
	}

	return nil
}

// PublishOrderCreated fans a submitted order out to all bound consumers.
func (b *StorefrontBroker) PublishOrderCreated(ctx context.Context, msg models.OrderCreatedEvent) error {
	ctx = wrap.WithAction(ctx, "rabbitmq_publish_order_created")

	return b.publish(ctx, OrdersExchange, msg.OrderID.String(), msg)
}

// PublishDeliveryCompleted announces a pin moved to history.
func (b *StorefrontBroker) PublishDeliveryCompleted(ctx context.Context, msg models.DeliveryCompletedEvent) error {
	ctx = wrap.WithAction(ctx, "rabbitmq_publish_delivery_completed")

	return b.publish(ctx, DeliveriesExchange, msg.PinID.String(), msg)
}

func (b *StorefrontBroker) publish(ctx context.Context, exchange, correlationID string, msg any) error {
	if err := b.client.EnsureConnection(ctx); err != nil {
		b.l.Error(ctx, "ensure connection failed", err)
		return wrap.Error(ctx, err)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("failed to marshal message: %w", err))
	}

	err = retry(5, time.Second, func() error {
		return b.client.Channel.PublishWithContext(
			ctx,
			exchange,
			"",    // routing key is ignored by fanout exchanges
			false, // mandatory
			false, // immediate
			amqp091.Publishing{
				ContentType:   "application/json",
				CorrelationId: correlationID,
				Body:          body,
				Timestamp:     time.Now(),
			},
		)
	})
	metrics.RecordRabbitMQPublish(b.service, exchange, err)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("failed to publish with context: %w", err))
	}

	return nil
}

func retry(n int, sleep time.Duration, fn func() error) error {
	var err error
	for range n {
		if err = fn(); err == nil {
			return nil
		}
		time.Sleep(sleep)
	}
	return err
}
