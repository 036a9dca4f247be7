package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Nhongkham198/pinCustomer/internal/domain/models"
	"github.com/Nhongkham198/pinCustomer/internal/domain/types"
	"github.com/Nhongkham198/pinCustomer/pkg/logger"
	wrap "github.com/Nhongkham198/pinCustomer/pkg/logger/wrapper"
	"github.com/Nhongkham198/pinCustomer/pkg/metrics"
	"github.com/Nhongkham198/pinCustomer/pkg/trm"
)

const defaultListLimit = 50

// Service handles storefront order intake. Orders are persisted first and
// fanned out to the printer/notification consumers after commit.
type Service struct {
	orders  OrderRepo
	events  EventPublisher
	trm     trm.TxManager
	service string
	log     logger.Logger
}

func NewService(orders OrderRepo, events EventPublisher, txManager trm.TxManager, service string, log logger.Logger) *Service {
	return &Service{
		orders:  orders,
		events:  events,
		trm:     txManager,
		service: service,
		log:     log,
	}
}

// Submit validates and persists a new order, then publishes it to the
// orders fanout. The stored total is always recomputed from the lines; a
// client-sent total is ignored.
func (s *Service) Submit(ctx context.Context, order *models.Order) (*models.Order, error) {
	ctx = wrap.WithAction(ctx, types.ActionOrderSubmitted)

	if len(order.Lines) == 0 {
		return nil, wrap.Error(ctx, types.ErrEmptyCart)
	}
	for _, line := range order.Lines {
		if line.Quantity <= 0 || line.UnitPrice < 0 {
			return nil, wrap.Error(ctx, fmt.Errorf("invalid line %q: %w", line.MenuItem, types.ErrEmptyCart))
		}
	}

	order.Total = order.Subtotal()
	order.Status = types.OrderSubmitted

	var created *models.Order

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.orders.Create(ctx, order)
		if err != nil {
			return fmt.Errorf("could not create order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	metrics.OrdersTotal.WithLabelValues(s.service, string(created.Status)).Inc()
	s.log.Info(ctx, "order submitted", "order_id", created.ID, "total", created.Total)

	if err := s.events.PublishOrderCreated(ctx, models.OrderCreatedEvent{
		OrderID:      created.ID,
		CustomerName: created.CustomerName,
		Lines:        created.Lines,
		Total:        created.Total,
		Timestamp:    created.CreatedAt,
	}); err != nil {
		// The order is committed; the printer consumer re-reads missed
		// orders on reconnect.
		s.log.Error(ctx, "failed to publish order created event", err)
	}

	return created, nil
}

func (s *Service) Get(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	return s.orders.Get(ctx, orderID)
}

func (s *Service) List(ctx context.Context, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.orders.List(ctx, limit)
}

// MarkPrinted is called by the printer collaborator acknowledging a ticket.
func (s *Service) MarkPrinted(ctx context.Context, orderID uuid.UUID) error {
	ctx = wrap.WithAction(ctx, "order_printed")

	if err := s.orders.UpdateStatus(ctx, orderID, types.OrderPrinted); err != nil {
		return wrap.Error(ctx, err)
	}

	return nil
}
