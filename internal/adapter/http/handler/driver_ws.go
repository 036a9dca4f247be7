package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	wshandler "github.com/Nhongkham198/pinCustomer/internal/adapter/http/ws"
	"github.com/Nhongkham198/pinCustomer/internal/service/navigation"
	"github.com/Nhongkham198/pinCustomer/pkg/logger"
	wrap "github.com/Nhongkham198/pinCustomer/pkg/logger/wrapper"
	"github.com/Nhongkham198/pinCustomer/pkg/metrics"
	ws "github.com/Nhongkham198/pinCustomer/pkg/wsHub"
)

type Driver struct {
	hub        *ws.ConnectionHub
	routes     navigation.RouteProvider
	sessionCfg wshandler.SessionConfig
	service    string
	log        logger.Logger

	upgrader websocket.Upgrader
}

func NewDriver(hub *ws.ConnectionHub, routes navigation.RouteProvider, sessionCfg wshandler.SessionConfig, service string, log logger.Logger) *Driver {
	return &Driver{
		hub:        hub,
		routes:     routes,
		sessionCfg: sessionCfg,
		service:    service,
		log:        log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The driver UI is served from the same origin in production;
			// dev setups connect from localhost ports.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleWS godoc
// @Summary      Driver navigation socket
// @Description  Upgrades to WebSocket; carries position samples in and guidance frames out
// @Tags         Driver
// @Param        driver_id path string true "Driver ID"
// @Success      101
// @Router       /ws/drivers/{driver_id} [get]
func (h *Driver) HandleWS(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "driver_ws_connect")

	driverID, err := uuid.Parse(r.PathValue("driver_id"))
	if err != nil {
		badRequestResponse(w, "invalid driver id")
		return
	}
	ctx = wrap.WithDriverID(ctx, driverID.String())

	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error(ctx, "failed to upgrade connection", err)
		return
	}

	conn := ws.NewConn(ctx, driverID, wsConn)
	if err := h.hub.Add(conn); err != nil {
		h.log.Error(ctx, "failed to register connection", err)
		_ = conn.Close()
		return
	}

	metrics.WebSocketConnectionsGauge.WithLabelValues(h.service).Inc()
	defer metrics.WebSocketConnectionsGauge.WithLabelValues(h.service).Dec()
	defer func() { _ = h.hub.Delete(driverID) }()

	h.log.Info(ctx, "driver connected")

	session := wshandler.NewSession(driverID, conn, h.routes, h.sessionCfg, h.log)
	session.Run(ctx)

	h.log.Info(ctx, "driver disconnected")
}
