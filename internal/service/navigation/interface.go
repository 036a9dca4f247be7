package navigation

import (
	"context"

	"github.com/Nhongkham198/pinCustomer/internal/domain/models"
	"github.com/Nhongkham198/pinCustomer/pkg/geo"
)

type (
	// RouteProvider computes a driving route between two points. The OSRM
	// adapter is the production implementation.
	RouteProvider interface {
		ComputeRoute(ctx context.Context, origin, destination geo.Point) (*models.Route, error)
	}

	// Notifier pushes guidance frames toward the device.
	Notifier func(update models.NavigationUpdate)
)
