package orders

import (
	"context"

	"github.com/google/uuid"

	"github.com/Nhongkham198/pinCustomer/internal/domain/models"
	"github.com/Nhongkham198/pinCustomer/internal/domain/types"
)

type (
	OrderRepo interface {
		Create(ctx context.Context, order *models.Order) (*models.Order, error)
		Get(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
		List(ctx context.Context, limit int) ([]models.Order, error)
		UpdateStatus(ctx context.Context, orderID uuid.UUID, status types.OrderStatus) error
	}

	EventPublisher interface {
		PublishOrderCreated(ctx context.Context, msg models.OrderCreatedEvent) error
	}
)
