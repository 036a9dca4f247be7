package position

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Nhongkham198/pinCustomer/internal/domain/models"
	"github.com/Nhongkham198/pinCustomer/internal/domain/types"
	"github.com/Nhongkham198/pinCustomer/pkg/logger"
	wrap "github.com/Nhongkham198/pinCustomer/pkg/logger/wrapper"
	"github.com/Nhongkham198/pinCustomer/pkg/metrics"
)

// defaultAcquireTimeout is how long a high-accuracy fix may take before the
// session falls back to low-accuracy positioning.
const defaultAcquireTimeout = 8 * time.Second

type Config struct {
	// AcquireTimeout overrides the high-accuracy fallback timer. Zero means
	// the default of 8 seconds.
	AcquireTimeout time.Duration
	Service        string // metrics label
}

// Manager owns the tracking sessions of one connection: the
// continuous-location subscription, the accuracy-mode fallback state machine
// and the screen wake-lock. An explicit stop returns it to a startable
// state; a permission denial is terminal.
type Manager struct {
	source   Source
	lock     WakeLock
	sink     Sink
	onStatus StatusFunc

	timeout time.Duration
	service string
	log     logger.Logger

	mu       sync.Mutex
	state    types.TrackingState
	mode     types.AccuracyMode
	lockHeld bool
	last     *models.PositionUpdate
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewManager(source Source, lock WakeLock, sink Sink, onStatus StatusFunc, cfg Config, log logger.Logger) *Manager {
	if cfg.AcquireTimeout == 0 {
		cfg.AcquireTimeout = defaultAcquireTimeout
	}
	if onStatus == nil {
		onStatus = func(models.TrackingStatus) {}
	}

	return &Manager{
		source:   source,
		lock:     lock,
		sink:     sink,
		onStatus: onStatus,
		timeout:  cfg.AcquireTimeout,
		service:  cfg.Service,
		log:      log,
		state:    types.TrackingIdle,
	}
}

// State returns the current session state and accuracy mode.
func (m *Manager) State() (types.TrackingState, types.AccuracyMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.mode
}

// LastPosition returns the most recent position, if any was received.
func (m *Manager) LastPosition() (models.PositionUpdate, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.last == nil {
		return models.PositionUpdate{}, false
	}
	return *m.last, true
}

// Start begins tracking: acquires the wake-lock, subscribes at high
// accuracy and arms the fallback timer. A stopped session may be started
// again; a permission denial is terminal for the connection.
func (m *Manager) Start(ctx context.Context) error {
	const op = "position.Manager.Start"

	m.mu.Lock()
	switch m.state {
	case types.TrackingAcquiring, types.TrackingActive:
		m.mu.Unlock()
		return types.ErrSessionActive
	case types.TrackingDenied:
		m.mu.Unlock()
		return types.ErrPermissionDenied
	}
	m.state = types.TrackingAcquiring
	m.mode = types.AccuracyHigh
	m.mu.Unlock()

	metrics.TrackingSessionsGauge.WithLabelValues(m.service).Inc()

	ctx = wrap.WithAction(ctx, types.ActionTrackingStarted)
	m.acquireLock(ctx)

	sub, err := m.source.Subscribe(ctx, types.AccuracyHigh)
	if err != nil {
		m.teardown(ctx, types.TrackingDenied, "location access denied")
		return wrap.Error(ctx, err)
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	m.mu.Lock()
	m.cancel = cancel
	m.done = done
	m.mu.Unlock()

	m.notify(types.TrackingAcquiring, types.AccuracyHigh, "")

	go m.run(runCtx, sub, done)

	m.log.Info(ctx, "tracking session started", "accuracy_mode", types.AccuracyHigh)
	return nil
}

// Stop tears down the session. Safe to call from any state, more than once.
func (m *Manager) Stop(ctx context.Context) {
	m.mu.Lock()
	cancel := m.cancel
	done := m.done
	m.cancel = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}

	ctx = wrap.WithAction(ctx, types.ActionTrackingStopped)
	m.teardown(ctx, types.TrackingStopped, "")
}

// Refresh re-acquires the wake-lock after the device regains foreground
// visibility. A no-op unless the session is live.
func (m *Manager) Refresh(ctx context.Context) {
	m.mu.Lock()
	live := m.state == types.TrackingAcquiring || m.state == types.TrackingActive
	m.mu.Unlock()

	if live {
		m.acquireLock(ctx)
	}
}

// run is the session event loop. It is the only goroutine touching the
// subscription, so every update is handled to completion before the next.
func (m *Manager) run(ctx context.Context, sub Subscription, done chan struct{}) {
	defer close(done)
	defer func() { sub.Cancel() }()

	timer := time.NewTimer(m.timeout)
	defer timer.Stop()

	mode := types.AccuracyHigh
	acquired := false

	for {
		select {
		case <-ctx.Done():
			return

		case update, ok := <-sub.Updates():
			if !ok {
				return
			}
			if !acquired {
				acquired = true
				timer.Stop()
				m.setState(types.TrackingActive, mode)
				m.notify(types.TrackingActive, mode, "")
			}
			m.mu.Lock()
			u := update
			m.last = &u
			m.mu.Unlock()

			metrics.PositionUpdatesTotal.WithLabelValues(m.service, string(mode)).Inc()
			m.sink.OnPosition(ctx, update)

		case err, ok := <-sub.Errors():
			if !ok {
				return
			}
			if errors.Is(err, types.ErrPermissionDenied) {
				ctx := wrap.WithAction(ctx, types.ActionTrackingDenied)
				m.log.Warn(ctx, "location permission denied, terminating session")
				m.teardown(ctx, types.TrackingDenied, "location access denied")
				return
			}

			// Transient positioning error: degrade (or oscillate) the
			// accuracy mode, never terminate the session.
			next := types.AccuracyLow
			if mode == types.AccuracyLow && acquired {
				next = types.AccuracyHigh
			}
			newSub, serr := m.resubscribe(ctx, sub, next, err)
			if serr != nil {
				return
			}
			sub = newSub
			mode = next

		case <-timer.C:
			if acquired || mode != types.AccuracyHigh {
				continue
			}
			// No fix within the window: retry with reduced accuracy
			// requirements for a faster, less precise fix.
			newSub, serr := m.resubscribe(ctx, sub, types.AccuracyLow, types.ErrPositionTimeout)
			if serr != nil {
				return
			}
			sub = newSub
			mode = types.AccuracyLow
		}
	}
}

func (m *Manager) resubscribe(ctx context.Context, old Subscription, mode types.AccuracyMode, cause error) (Subscription, error) {
	ctx = wrap.WithAction(ctx, types.ActionAccuracyFallback)
	m.log.Warn(ctx, "switching accuracy mode",
		"accuracy_mode", mode,
		"cause", cause.Error(),
	)

	old.Cancel()

	sub, err := m.source.Subscribe(ctx, mode)
	if err != nil {
		m.log.Error(ctx, "failed to resubscribe to location source", err)
		m.teardown(ctx, types.TrackingStopped, "location source unavailable")
		return nil, err
	}

	m.mu.Lock()
	m.mode = mode
	state := m.state
	m.mu.Unlock()

	m.notify(state, mode, "")
	return sub, nil
}

func (m *Manager) setState(state types.TrackingState, mode types.AccuracyMode) {
	m.mu.Lock()
	m.state = state
	m.mode = mode
	m.mu.Unlock()
}

func (m *Manager) notify(state types.TrackingState, mode types.AccuracyMode, msg string) {
	m.onStatus(models.TrackingStatus{State: state, Mode: mode, Message: msg})
}

// teardown releases session resources and settles the terminal state.
// Idempotent: a second call finds nothing left to release.
func (m *Manager) teardown(ctx context.Context, state types.TrackingState, msg string) {
	m.mu.Lock()
	prev := m.state
	if prev == types.TrackingStopped || prev == types.TrackingDenied {
		m.mu.Unlock()
		return
	}
	m.state = state
	mode := m.mode
	m.mu.Unlock()

	m.releaseLock(ctx)
	if prev == types.TrackingAcquiring || prev == types.TrackingActive {
		metrics.TrackingSessionsGauge.WithLabelValues(m.service).Dec()
	}
	m.notify(state, mode, msg)
	m.log.Info(ctx, "tracking session ended", "state", state)
}

// acquireLock is idempotent and best-effort: a wake-lock failure is logged,
// never surfaced.
func (m *Manager) acquireLock(ctx context.Context) {
	m.mu.Lock()
	if m.lockHeld {
		m.mu.Unlock()
		return
	}
	m.lockHeld = true
	m.mu.Unlock()

	if err := m.lock.Acquire(ctx); err != nil {
		m.log.Warn(ctx, "failed to acquire wake-lock", "err", err.Error())
	}
}

func (m *Manager) releaseLock(ctx context.Context) {
	m.mu.Lock()
	if !m.lockHeld {
		m.mu.Unlock()
		return
	}
	m.lockHeld = false
	m.mu.Unlock()

	if err := m.lock.Release(ctx); err != nil {
		m.log.Warn(ctx, "failed to release wake-lock", "err", err.Error())
	}
}
