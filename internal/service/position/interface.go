package position

import (
	"context"

	"github.com/Nhongkham198/pinCustomer/internal/domain/models"
	"github.com/Nhongkham198/pinCustomer/internal/domain/types"
)

type (
	// Source is a continuous device location feed. The production source is
	// the driver's WebSocket connection; tests inject fakes.
	Source interface {
		Subscribe(ctx context.Context, mode types.AccuracyMode) (Subscription, error)
	}

	// Subscription delivers position samples and typed positioning errors
	// until cancelled. Cancel must be safe to call more than once.
	Subscription interface {
		Updates() <-chan models.PositionUpdate
		Errors() <-chan error
		Cancel()
	}

	// WakeLock keeps the device screen awake during active navigation.
	// Acquisition may fail; that is never fatal.
	WakeLock interface {
		Acquire(ctx context.Context) error
		Release(ctx context.Context) error
	}

	// Sink consumes normalized position updates, one at a time. Each update
	// is handled to completion before the next one is delivered.
	Sink interface {
		OnPosition(ctx context.Context, update models.PositionUpdate)
	}

	// StatusFunc is notified on every session state or accuracy-mode change.
	StatusFunc func(status models.TrackingStatus)
)
