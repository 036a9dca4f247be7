package navigation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nhongkham198/pinCustomer/internal/domain/models"
	"github.com/Nhongkham198/pinCustomer/internal/domain/types"
	"github.com/Nhongkham198/pinCustomer/pkg/geo"
	"github.com/Nhongkham198/pinCustomer/pkg/logger"
)

type fakeProvider struct {
	mu      sync.Mutex
	origins []geo.Point

	// gate, when non-nil, blocks ComputeRoute until it is closed.
	gate  chan struct{}
	route *models.Route
	err   error
}

func (p *fakeProvider) ComputeRoute(_ context.Context, origin, _ geo.Point) (*models.Route, error) {
	p.mu.Lock()
	p.origins = append(p.origins, origin)
	gate := p.gate
	p.mu.Unlock()

	if gate != nil {
		<-gate
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.route, p.err
}

func (p *fakeProvider) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.origins)
}

func (p *fakeProvider) setRoute(r *models.Route) {
	p.mu.Lock()
	p.route = r
	p.mu.Unlock()
}

type frameRecorder struct {
	mu     sync.Mutex
	frames []models.NavigationUpdate
}

func (r *frameRecorder) notify(u models.NavigationUpdate) {
	r.mu.Lock()
	r.frames = append(r.frames, u)
	r.mu.Unlock()
}

func (r *frameRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

func (r *frameRecorder) last() models.NavigationUpdate {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames[len(r.frames)-1]
}

func steppedRoute(origin, dest geo.Point) *models.Route {
	return &models.Route{
		Steps: []models.RouteStep{
			{Location: origin, Type: types.ManeuverDepart},
			{Location: north(origin, 500), Type: types.ManeuverTurn, Modifier: types.ModifierLeft},
			{Location: dest, Type: types.ManeuverArrive},
		},
		Polyline:    []geo.Point{origin, dest},
		Destination: dest,
	}
}

func newTestService(p *fakeProvider, rec *frameRecorder) *Service {
	log := logger.InitLogger("navigator-test", logger.LevelError)
	return NewService(p, rec.notify, Config{Service: "navigator-test"}, log)
}

func positionAt(p geo.Point) models.PositionUpdate {
	return models.PositionUpdate{Location: p, AccuracyMeters: 5, Timestamp: time.Now()}
}

func TestSetDestination_AppliesRouteAndFitsBounds(t *testing.T) {
	dest := north(base, 1000)
	provider := &fakeProvider{route: steppedRoute(base, dest)}
	rec := &frameRecorder{}
	svc := newTestService(provider, rec)

	require.NoError(t, svc.SetDestination(context.Background(), base, dest))

	require.Equal(t, 1, rec.count())
	frame := rec.last()
	require.NotNil(t, frame.Route)
	assert.True(t, frame.FitBounds)
	assert.Equal(t, 1000, frame.DistanceToDestination)
	require.NotNil(t, frame.Instruction)
	assert.Equal(t, "Turn left", frame.Instruction.Text)
}

func TestSetDestination_FallbackRouteStillApplies(t *testing.T) {
	dest := north(base, 1000)
	provider := &fakeProvider{route: &models.Route{
		Polyline:    []geo.Point{base, dest},
		Destination: dest,
		Fallback:    true,
	}}
	rec := &frameRecorder{}
	svc := newTestService(provider, rec)

	require.NoError(t, svc.SetDestination(context.Background(), base, dest))

	frame := rec.last()
	require.NotNil(t, frame.Route)
	assert.True(t, frame.Route.Fallback)
	assert.True(t, frame.FitBounds)
	assert.Nil(t, frame.Instruction)
	assert.Equal(t, 1000, frame.DistanceToDestination)

	// Distance-only guidance keeps flowing on a fallback route.
	svc.OnPosition(context.Background(), positionAt(north(base, 990)))
	frame = rec.last()
	assert.Nil(t, frame.Instruction)
	assert.Equal(t, 10, frame.DistanceToDestination)
}

func TestOnPosition_NoDestinationIsSilent(t *testing.T) {
	provider := &fakeProvider{}
	rec := &frameRecorder{}
	svc := newTestService(provider, rec)

	svc.OnPosition(context.Background(), positionAt(base))

	assert.Zero(t, rec.count())
	assert.Zero(t, provider.calls())
}

func TestOnPosition_DriftBelowThresholdDoesNotReroute(t *testing.T) {
	dest := north(base, 1000)
	provider := &fakeProvider{route: steppedRoute(base, dest)}
	rec := &frameRecorder{}
	svc := newTestService(provider, rec)

	require.NoError(t, svc.SetDestination(context.Background(), base, dest))
	svc.OnPosition(context.Background(), positionAt(north(base, 39)))

	assert.Equal(t, 1, provider.calls())
}

func TestOnPosition_DriftTriggersExactlyOneReroute(t *testing.T) {
	dest := north(base, 1000)
	provider := &fakeProvider{route: steppedRoute(base, dest)}
	rec := &frameRecorder{}
	svc := newTestService(provider, rec)

	require.NoError(t, svc.SetDestination(context.Background(), base, dest))

	gate := make(chan struct{})
	provider.mu.Lock()
	provider.gate = gate
	provider.mu.Unlock()

	// Two drifted updates while the first recomputation is in flight
	// must not stack a second one.
	svc.OnPosition(context.Background(), positionAt(north(base, 41)))
	svc.OnPosition(context.Background(), positionAt(north(base, 45)))

	require.Eventually(t, func() bool { return provider.calls() == 2 }, time.Second, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 2, provider.calls())

	rerouted := steppedRoute(north(base, 41), dest)
	provider.setRoute(rerouted)
	close(gate)

	require.Eventually(t, func() bool {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		for _, f := range rec.frames {
			if f.Route != nil && !f.FitBounds {
				return true
			}
		}
		return false
	}, time.Second, time.Millisecond)
}

func TestRecompute_FallbackKeepsPreviousRoute(t *testing.T) {
	dest := north(base, 1000)
	good := steppedRoute(base, dest)
	provider := &fakeProvider{route: good}
	rec := &frameRecorder{}
	svc := newTestService(provider, rec)

	require.NoError(t, svc.SetDestination(context.Background(), base, dest))

	provider.setRoute(&models.Route{
		Polyline:    []geo.Point{north(base, 50), dest},
		Destination: dest,
		Fallback:    true,
	})

	drifted := north(base, 50)
	svc.OnPosition(context.Background(), positionAt(drifted))
	require.Eventually(t, func() bool { return provider.calls() == 2 }, time.Second, time.Millisecond)

	// The drift anchor advanced even though the fallback was rejected, so
	// the same position does not hammer the routing service again.
	require.Eventually(t, func() bool {
		svc.mu.Lock()
		defer svc.mu.Unlock()
		return !svc.rerouteInFlight
	}, time.Second, time.Millisecond)

	svc.OnPosition(context.Background(), positionAt(drifted))
	assert.Equal(t, 2, provider.calls())

	// Guidance still comes from the original stepped route.
	frame := rec.last()
	require.NotNil(t, frame.Instruction)
	assert.Equal(t, "Turn left", frame.Instruction.Text)
}

func TestStop_DiscardsInFlightRecomputation(t *testing.T) {
	dest := north(base, 1000)
	provider := &fakeProvider{route: steppedRoute(base, dest)}
	rec := &frameRecorder{}
	svc := newTestService(provider, rec)

	require.NoError(t, svc.SetDestination(context.Background(), base, dest))

	gate := make(chan struct{})
	provider.mu.Lock()
	provider.gate = gate
	provider.mu.Unlock()

	svc.OnPosition(context.Background(), positionAt(north(base, 60)))
	require.Eventually(t, func() bool { return provider.calls() == 2 }, time.Second, time.Millisecond)

	svc.Stop()
	before := rec.count()
	close(gate)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, before, rec.count())

	svc.mu.Lock()
	assert.Nil(t, svc.route)
	assert.Nil(t, svc.lastCalc)
	svc.mu.Unlock()
}

func TestClearDestination_StopsGuidanceOnly(t *testing.T) {
	dest := north(base, 1000)
	provider := &fakeProvider{route: steppedRoute(base, dest)}
	rec := &frameRecorder{}
	svc := newTestService(provider, rec)

	require.NoError(t, svc.SetDestination(context.Background(), base, dest))
	svc.ClearDestination()

	n := rec.count()
	svc.OnPosition(context.Background(), positionAt(north(base, 41)))
	assert.Equal(t, n, rec.count())
	assert.Equal(t, 1, provider.calls())
}
