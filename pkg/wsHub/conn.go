package ws

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Conn wraps one websocket connection. Writes are serialized through the
// mutex; gorilla/websocket allows only one concurrent writer.
type Conn struct {
	conn     *websocket.Conn
	entityID uuid.UUID
	doneCtx  context.Context
	cancel   context.CancelFunc
	mu       sync.Mutex
}

func NewConn(ctx context.Context, entityID uuid.UUID, conn *websocket.Conn) *Conn {
	ctx, cancel := context.WithCancel(ctx)

	return &Conn{
		conn:     conn,
		entityID: entityID,
		doneCtx:  ctx,
		cancel:   cancel,
	}
}

func (c *Conn) EntityID() uuid.UUID {
	return c.entityID
}

// Done is closed when the connection is shut down.
func (c *Conn) Done() <-chan struct{} {
	return c.doneCtx.Done()
}

func (c *Conn) Health() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.health()
}

// health must be called with mu held.
func (c *Conn) health() error {
	if c.conn == nil {
		return errors.New("connection is nil")
	}

	select {
	case <-c.doneCtx.Done():
		return errors.New("connection context cancelled")
	default:
	}

	if err := c.conn.WriteControl(
		websocket.PingMessage,
		[]byte("ping"),
		time.Now().Add(3*time.Second),
	); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	return nil
}

// Send writes one JSON message to the peer.
func (c *Conn) Send(msg any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.health(); err != nil {
		return fmt.Errorf("send failed: connection not healthy: %w", err)
	}
	return c.conn.WriteJSON(msg)
}

// Listen reads JSON messages until the connection closes or the handler
// returns an error.
func (c *Conn) Listen(handler func(msg map[string]any) error) error {
	for {
		select {
		case <-c.doneCtx.Done():
			return errors.New("listen stopped: context done")
		default:
			var msg map[string]any
			if err := c.conn.ReadJSON(&msg); err != nil {
				return fmt.Errorf("read failed: %w", err)
			}
			if err := handler(msg); err != nil {
				return fmt.Errorf("handler failed: %w", err)
			}
		}
	}
}

func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
