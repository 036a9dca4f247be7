package pins

import (
	"context"

	"github.com/google/uuid"

	"github.com/Nhongkham198/pinCustomer/internal/domain/models"
)

type (
	PinRepo interface {
		Create(ctx context.Context, pin *models.Pin) (*models.Pin, error)
		Get(ctx context.Context, pinID uuid.UUID) (*models.Pin, error)
		List(ctx context.Context) ([]models.Pin, error)
		Delete(ctx context.Context, pinID uuid.UUID) error
		DeleteAll(ctx context.Context) error
	}

	HistoryRepo interface {
		Create(ctx context.Context, delivered *models.DeliveredPin) (*models.DeliveredPin, error)
		List(ctx context.Context, limit int) ([]models.DeliveredPin, error)
	}

	EventPublisher interface {
		PublishDeliveryCompleted(ctx context.Context, msg models.DeliveryCompletedEvent) error
	}
)
