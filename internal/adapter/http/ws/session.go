package wshandler

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Nhongkham198/pinCustomer/internal/adapter/http/ws/dto"
	"github.com/Nhongkham198/pinCustomer/internal/domain/models"
	"github.com/Nhongkham198/pinCustomer/internal/domain/types"
	"github.com/Nhongkham198/pinCustomer/internal/service/navigation"
	"github.com/Nhongkham198/pinCustomer/internal/service/position"
	"github.com/Nhongkham198/pinCustomer/pkg/geo"
	"github.com/Nhongkham198/pinCustomer/pkg/logger"
	wrap "github.com/Nhongkham198/pinCustomer/pkg/logger/wrapper"
	ws "github.com/Nhongkham198/pinCustomer/pkg/wsHub"
)

// Session glues one driver connection to its tracking and guidance state.
// The browser is both the position source (it pushes geolocation samples as
// frames) and the guidance sink (it renders the frames we push back), so the
// session implements position.Source and position.WakeLock over the socket.
type Session struct {
	driverID uuid.UUID
	conn     *ws.Conn

	manager *position.Manager
	nav     *navigation.Service

	mu  sync.Mutex
	sub *deviceSub // active position subscription, nil between Subscribe calls

	log logger.Logger
}

type SessionConfig struct {
	Position   position.Config
	Navigation navigation.Config
}

func NewSession(driverID uuid.UUID, conn *ws.Conn, routes navigation.RouteProvider, cfg SessionConfig, log logger.Logger) *Session {
	s := &Session{
		driverID: driverID,
		conn:     conn,
		log:      log,
	}

	s.nav = navigation.NewService(routes, s.sendNavigation, cfg.Navigation, log)
	s.manager = position.NewManager(s, s, s.nav, s.sendStatus, cfg.Position, log)

	return s
}

// Run consumes frames until the connection drops, then tears the session
// down. Blocks for the lifetime of the connection.
func (s *Session) Run(ctx context.Context) {
	ctx = wrap.WithDriverID(ctx, s.driverID.String())

	err := s.conn.Listen(func(msg map[string]any) error {
		s.handleMessage(ctx, msg)
		return nil
	})
	s.log.Debug(ctx, "connection listen finished", "reason", err.Error())

	s.nav.Stop()
	s.manager.Stop(ctx)
}

func (s *Session) handleMessage(ctx context.Context, msg map[string]any) {
	frameType, _ := msg["type"].(string)

	switch frameType {
	case dto.MsgStartTracking:
		if err := s.manager.Start(ctx); err != nil {
			s.sendError(ctx, err.Error())
		}

	case dto.MsgStopTracking:
		s.nav.Stop()
		s.manager.Stop(ctx)

	case dto.MsgPosition:
		var frame dto.PositionFrame
		if err := decodeFrame(msg, &frame); err != nil {
			s.sendError(ctx, err.Error())
			return
		}
		s.deliverPosition(frame.ToModel())

	case dto.MsgPositionError:
		var frame dto.PositionErrorFrame
		if err := decodeFrame(msg, &frame); err != nil {
			s.sendError(ctx, err.Error())
			return
		}
		s.deliverError(positionError(frame.Code))

	case dto.MsgSetDestination:
		var frame dto.SetDestinationFrame
		if err := decodeFrame(msg, &frame); err != nil {
			s.sendError(ctx, err.Error())
			return
		}
		s.setDestination(ctx, geo.Point{Lat: frame.Lat, Lng: frame.Lng})

	case dto.MsgClearDestination:
		s.nav.ClearDestination()

	case dto.MsgRefresh:
		s.manager.Refresh(ctx)

	default:
		s.sendError(ctx, fmt.Sprintf("unknown frame type %q", frameType))
	}
}

func (s *Session) setDestination(ctx context.Context, dest geo.Point) {
	origin, ok := s.manager.LastPosition()
	if !ok {
		s.sendError(ctx, "no position fix yet")
		return
	}

	// Route computation retries for seconds; never stall the read loop.
	go func() {
		if err := s.nav.SetDestination(context.WithoutCancel(ctx), origin.Location, dest); err != nil {
			s.sendError(ctx, err.Error())
		}
	}()
}

// Subscribe implements position.Source: it asks the device to stream
// positions at the requested accuracy and registers the channel pair the
// inbound frames are routed to.
func (s *Session) Subscribe(ctx context.Context, mode types.AccuracyMode) (position.Subscription, error) {
	sub := &deviceSub{
		updates: make(chan models.PositionUpdate, 16),
		errs:    make(chan error, 1),
	}

	s.mu.Lock()
	s.sub = sub
	s.mu.Unlock()

	if err := s.conn.Send(dto.ConfigurePositionsFrame{Type: dto.MsgConfigurePositions, Mode: mode}); err != nil {
		s.mu.Lock()
		s.sub = nil
		s.mu.Unlock()
		return nil, fmt.Errorf("configure positions: %w", err)
	}

	return sub, nil
}

// Acquire implements position.WakeLock over the socket; the device holds
// the actual lock and reports failures as position_error frames.
func (s *Session) Acquire(ctx context.Context) error {
	return s.conn.Send(dto.WakeLockFrame{Type: dto.MsgWakeLock, Held: true})
}

func (s *Session) Release(ctx context.Context) error {
	return s.conn.Send(dto.WakeLockFrame{Type: dto.MsgWakeLock, Held: false})
}

func (s *Session) deliverPosition(update models.PositionUpdate) {
	s.mu.Lock()
	sub := s.sub
	s.mu.Unlock()

	if sub == nil {
		return
	}
	sub.deliver(update)
}

func (s *Session) deliverError(err error) {
	s.mu.Lock()
	sub := s.sub
	s.mu.Unlock()

	if sub == nil {
		return
	}
	sub.fail(err)
}

func (s *Session) sendStatus(status models.TrackingStatus) {
	_ = s.conn.Send(dto.TrackingStatusFrame{
		Type:    dto.MsgTrackingStatus,
		State:   status.State,
		Mode:    status.Mode,
		Message: status.Message,
	})
}

func (s *Session) sendNavigation(update models.NavigationUpdate) {
	_ = s.conn.Send(dto.NavigationFrame{Type: dto.MsgNavigation, NavigationUpdate: update})
}

func (s *Session) sendError(ctx context.Context, msg string) {
	if err := s.conn.Send(dto.ErrorFrame{Type: dto.MsgError, Message: msg}); err != nil {
		s.log.Warn(ctx, "failed to send error frame", "err", err.Error())
	}
}

func positionError(code string) error {
	switch code {
	case "permission_denied":
		return types.ErrPermissionDenied
	case "timeout":
		return types.ErrPositionTimeout
	default:
		return types.ErrPositionUnavailable
	}
}

// decodeFrame re-marshals the loosely-typed frame into a concrete DTO.
func decodeFrame(msg map[string]any, dst any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("malformed frame: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("malformed frame: %w", err)
	}
	return nil
}

// deviceSub is one position subscription backed by the websocket frames.
type deviceSub struct {
	updates chan models.PositionUpdate
	errs    chan error

	mu        sync.Mutex
	cancelled bool
}

func (d *deviceSub) Updates() <-chan models.PositionUpdate { return d.updates }
func (d *deviceSub) Errors() <-chan error                  { return d.errs }

func (d *deviceSub) Cancel() {
	d.mu.Lock()
	d.cancelled = true
	d.mu.Unlock()
}

// deliver drops samples when the consumer lags; positions are superseded by
// the next fix anyway.
func (d *deviceSub) deliver(update models.PositionUpdate) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancelled {
		return
	}
	select {
	case d.updates <- update:
	default:
	}
}

func (d *deviceSub) fail(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancelled {
		return
	}
	select {
	case d.errs <- err:
	default:
	}
}
