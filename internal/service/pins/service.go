package pins

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Nhongkham198/pinCustomer/internal/domain/models"
	"github.com/Nhongkham198/pinCustomer/internal/domain/types"
	"github.com/Nhongkham198/pinCustomer/pkg/geo"
	"github.com/Nhongkham198/pinCustomer/pkg/logger"
	wrap "github.com/Nhongkham198/pinCustomer/pkg/logger/wrapper"
	"github.com/Nhongkham198/pinCustomer/pkg/metrics"
	"github.com/Nhongkham198/pinCustomer/pkg/trm"
)

const defaultHistoryLimit = 100

// Service owns the delivery pin board. Pins appear through single creation
// or batch import, and leave either by gated deletion or by moving to the
// delivery history on completion. A completed pin is never silently dropped.
type Service struct {
	pins    PinRepo
	history HistoryRepo
	events  EventPublisher
	trm     trm.TxManager
	service string
	log     logger.Logger
}

func NewService(pins PinRepo, history HistoryRepo, events EventPublisher, txManager trm.TxManager, service string, log logger.Logger) *Service {
	return &Service{
		pins:    pins,
		history: history,
		events:  events,
		trm:     txManager,
		service: service,
		log:     log,
	}
}

func (s *Service) List(ctx context.Context) ([]models.Pin, error) {
	return s.pins.List(ctx)
}

func (s *Service) Create(ctx context.Context, pin *models.Pin) (*models.Pin, error) {
	ctx = wrap.WithAction(ctx, "create_pin")

	if !geo.Valid(pin.Location) {
		return nil, wrap.Error(ctx, types.ErrInvalidCoord)
	}

	created, err := s.pins.Create(ctx, pin)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("could not create pin: %w", err))
	}

	return created, nil
}

// Import applies a pin batch atomically. Replace mode clears the board
// first; either the whole batch lands or none of it does.
func (s *Service) Import(ctx context.Context, batch []models.Pin, mode types.ImportMode) ([]models.Pin, error) {
	ctx = wrap.WithAction(ctx, types.ActionPinsImported)

	if len(batch) == 0 {
		return nil, wrap.Error(ctx, types.ErrEmptyImport)
	}
	for _, pin := range batch {
		if !geo.Valid(pin.Location) {
			return nil, wrap.Error(ctx, types.ErrInvalidCoord)
		}
	}

	var imported []models.Pin

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		if mode == types.ImportReplace {
			if err := s.pins.DeleteAll(ctx); err != nil {
				return fmt.Errorf("could not clear board: %w", err)
			}
		}

		for i := range batch {
			pin := batch[i]
			created, err := s.pins.Create(ctx, &pin)
			if err != nil {
				return fmt.Errorf("could not import pin %q: %w", pin.Name, err)
			}
			imported = append(imported, *created)
		}

		return nil
	})
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	metrics.PinsImportedTotal.WithLabelValues(s.service, string(mode)).Add(float64(len(imported)))
	s.log.Info(ctx, "pin batch imported", "mode", mode, "count", len(imported))

	return imported, nil
}

func (s *Service) Delete(ctx context.Context, pinID uuid.UUID) error {
	ctx = wrap.WithAction(ctx, "delete_pin")
	ctx = wrap.WithPinID(ctx, pinID.String())

	if err := s.pins.Delete(ctx, pinID); err != nil {
		return wrap.Error(ctx, err)
	}

	s.log.Info(ctx, "pin deleted")

	return nil
}

// Complete moves a pin to the delivery history. The removal from the board
// and the history insert happen in one transaction; the completion event is
// published after commit, best effort.
func (s *Service) Complete(ctx context.Context, pinID uuid.UUID) (*models.DeliveredPin, error) {
	ctx = wrap.WithAction(ctx, types.ActionDeliveryCompleted)
	ctx = wrap.WithPinID(ctx, pinID.String())

	var delivered *models.DeliveredPin

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		pin, err := s.pins.Get(ctx, pinID)
		if err != nil {
			return err
		}

		if err := s.pins.Delete(ctx, pinID); err != nil {
			return err
		}

		delivered, err = s.history.Create(ctx, &models.DeliveredPin{
			PinID:       pin.ID,
			Name:        pin.Name,
			Location:    pin.Location,
			OrderValue:  pin.OrderValue,
			Note:        pin.Note,
			DeliveredAt: time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("could not record delivery: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	metrics.DeliveriesCompletedTotal.WithLabelValues(s.service).Inc()
	s.log.Info(ctx, "delivery completed", "name", delivered.Name)

	if err := s.events.PublishDeliveryCompleted(ctx, models.DeliveryCompletedEvent{
		PinID:       delivered.PinID,
		Name:        delivered.Name,
		Location:    delivered.Location,
		OrderValue:  delivered.OrderValue,
		DeliveredAt: delivered.DeliveredAt,
	}); err != nil {
		// The delivery is already committed; consumers catch up from history.
		s.log.Error(ctx, "failed to publish delivery completed event", err)
	}

	return delivered, nil
}

func (s *Service) History(ctx context.Context, limit int) ([]models.DeliveredPin, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.history.List(ctx, limit)
}
