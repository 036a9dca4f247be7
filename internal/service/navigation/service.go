package navigation

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/Nhongkham198/pinCustomer/internal/domain/models"
	"github.com/Nhongkham198/pinCustomer/internal/domain/types"
	"github.com/Nhongkham198/pinCustomer/pkg/geo"
	"github.com/Nhongkham198/pinCustomer/pkg/logger"
	wrap "github.com/Nhongkham198/pinCustomer/pkg/logger/wrapper"
	"github.com/Nhongkham198/pinCustomer/pkg/metrics"
)

const defaultRerouteThresholdMeters = 40.0

type Config struct {
	// RerouteThresholdMeters is the drift from the last route-calculation
	// position that triggers a background recomputation.
	RerouteThresholdMeters float64

	// Service label for metrics.
	Service string
}

// Service drives turn-by-turn guidance for one tracking session. It consumes
// position updates, emits guidance frames through the Notifier and
// recomputes the route in the background when the driver drifts off it.
type Service struct {
	routes    RouteProvider
	notify    Notifier
	log       logger.Logger
	threshold float64
	service   string

	mu          sync.Mutex
	destination *geo.Point
	route       *models.Route

	// lastCalc is the position the current route was computed from. It
	// advances on every completed recomputation, fallback or not, so a
	// failing routing service is retried once per drift rather than on
	// every position update.
	lastCalc *geo.Point

	// generation invalidates in-flight recomputations. Stop bumps it; a
	// recomputation that lands with a stale generation is discarded.
	generation uint64

	rerouteInFlight bool
}

func NewService(routes RouteProvider, notify Notifier, cfg Config, log logger.Logger) *Service {
	threshold := cfg.RerouteThresholdMeters
	if threshold <= 0 {
		threshold = defaultRerouteThresholdMeters
	}
	return &Service{
		routes:    routes,
		notify:    notify,
		log:       log,
		threshold: threshold,
		service:   cfg.Service,
	}
}

// SetDestination computes a route from origin and makes it the active one.
// Unlike background reroutes a user request applies even a straight-line
// fallback route, and tells the client to re-fit the map view.
func (s *Service) SetDestination(ctx context.Context, origin, destination geo.Point) error {
	const op = "navigation.SetDestination"

	s.mu.Lock()
	gen := s.generation
	s.mu.Unlock()

	metrics.ReroutesTotal.WithLabelValues(s.service, "user").Inc()

	route, err := s.routes.ComputeRoute(ctx, origin, destination)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		s.log.Warn(wrap.WithAction(ctx, types.ActionRerouteDiscarded), "discarding route for a stopped session")
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, types.ErrStaleRoute))
	}
	s.destination = &destination
	s.route = route
	s.lastCalc = &origin
	s.mu.Unlock()

	action := types.ActionRouteComputed
	if route.Fallback {
		action = types.ActionRouteFallback
	}
	s.log.Info(wrap.WithAction(ctx, action), "destination set",
		"steps", len(route.Steps),
		"distance_m", route.DistanceMeters,
	)

	s.notify(models.NavigationUpdate{
		Instruction:           BuildInstruction(origin, route),
		DistanceToDestination: int(math.Round(geo.Distance(origin, destination))),
		Route:                 route,
		FitBounds:             true,
	})
	return nil
}

// ClearDestination drops the active route. The tracking session keeps
// running; only guidance stops.
func (s *Service) ClearDestination() {
	s.mu.Lock()
	s.destination = nil
	s.route = nil
	s.lastCalc = nil
	s.mu.Unlock()
}

// Stop ends the guidance session. Any recomputation still in flight is
// invalidated and its late result discarded.
func (s *Service) Stop() {
	s.mu.Lock()
	s.generation++
	s.destination = nil
	s.route = nil
	s.lastCalc = nil
	s.rerouteInFlight = false
	s.mu.Unlock()
}

// OnPosition implements position.Sink. Every update produces a guidance
// frame; drifting beyond the threshold from the last route-calculation
// position additionally kicks off one background recomputation.
func (s *Service) OnPosition(ctx context.Context, update models.PositionUpdate) {
	pos := update.Location

	s.mu.Lock()
	if s.destination == nil {
		s.mu.Unlock()
		return
	}
	dest := *s.destination
	route := s.route
	gen := s.generation

	reroute := false
	if s.lastCalc != nil && !s.rerouteInFlight && geo.Distance(pos, *s.lastCalc) > s.threshold {
		s.rerouteInFlight = true
		reroute = true
	}
	s.mu.Unlock()

	s.notify(models.NavigationUpdate{
		Instruction:           BuildInstruction(pos, route),
		DistanceToDestination: int(math.Round(geo.Distance(pos, dest))),
	})

	if reroute {
		metrics.ReroutesTotal.WithLabelValues(s.service, "drift").Inc()
		s.log.Info(wrap.WithAction(ctx, types.ActionRerouteTriggered), "drifted off route, recomputing")
		go s.recompute(context.WithoutCancel(ctx), gen, pos, dest)
	}
}

func (s *Service) recompute(ctx context.Context, gen uint64, origin, dest geo.Point) {
	route, err := s.routes.ComputeRoute(ctx, origin, dest)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		s.log.Warn(wrap.WithAction(ctx, types.ActionRerouteDiscarded), "discarding stale recomputation")
		return
	}
	s.rerouteInFlight = false
	s.lastCalc = &origin

	applied := false
	if err == nil && !route.Fallback {
		s.route = route
		applied = true
	}
	s.mu.Unlock()

	switch {
	case err != nil:
		s.log.Error(wrap.WithAction(ctx, types.ActionExternalServiceFailed), "recomputation failed", err)
	case !applied:
		// Keep guiding on the previous route; a stale route beats a
		// straight line the driver cannot follow.
		s.log.Warn(wrap.WithAction(ctx, types.ActionRouteFallback), "recomputation fell back, keeping previous route")
	default:
		s.log.Info(wrap.WithAction(ctx, types.ActionRouteComputed), "route recomputed", "steps", len(route.Steps))
		s.notify(models.NavigationUpdate{
			Instruction:           BuildInstruction(origin, route),
			DistanceToDestination: int(math.Round(geo.Distance(origin, dest))),
			Route:                 route,
		})
	}
}
