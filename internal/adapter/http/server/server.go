package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Nhongkham198/pinCustomer/config"
	"github.com/Nhongkham198/pinCustomer/internal/adapter/http/handler"
	"github.com/Nhongkham198/pinCustomer/internal/adapter/http/middleware"
	wshandler "github.com/Nhongkham198/pinCustomer/internal/adapter/http/ws"
	"github.com/Nhongkham198/pinCustomer/internal/domain/types"
	"github.com/Nhongkham198/pinCustomer/internal/service/navigation"
	"github.com/Nhongkham198/pinCustomer/internal/service/position"
	"github.com/Nhongkham198/pinCustomer/pkg/logger"
	wrap "github.com/Nhongkham198/pinCustomer/pkg/logger/wrapper"
	ws "github.com/Nhongkham198/pinCustomer/pkg/wsHub"
)

const serverIPAddress = "%s:%s"

// GateService covers both the unlock endpoint and token verification
// on the gated routes.
type GateService interface {
	handler.GateService
	middleware.GateVerifier
}

type API struct {
	mode   types.ServiceMode
	mux    *http.ServeMux
	server *http.Server
	routes *handlers
	m      *middleware.Middleware

	addr string
	cfg  config.Config
	log  logger.Logger
}

type handlers struct {
	health *handler.Health
	auth   *handler.Auth
	pin    *handler.Pin
	order  *handler.Order
	driver *handler.Driver
}

func New(
	cfg config.Config,
	gateService GateService,
	pinService handler.PinService,
	orderService handler.OrderService,
	driverHub *ws.ConnectionHub,
	routeProvider navigation.RouteProvider,
	log logger.Logger,
) (*API, error) {
	var addr string
	handlers := &handlers{
		health: handler.NewHealth(string(cfg.Mode), log),
	}

	switch cfg.Mode {
	case types.StorefrontService:
		if gateService == nil {
			return nil, errors.New("gate service is required")
		}
		addr = fmt.Sprintf(serverIPAddress, "0.0.0.0", cfg.Services.StorefrontService)
		handlers.auth = handler.NewAuth(gateService, log)
		handlers.pin = handler.NewPin(pinService, log)
		handlers.order = handler.NewOrder(orderService, log)
	case types.NavigatorService:
		if driverHub == nil || routeProvider == nil {
			return nil, errors.New("driver hub and route provider are required")
		}
		addr = fmt.Sprintf(serverIPAddress, "0.0.0.0", cfg.Services.NavigatorService)
		sessionCfg := wshandler.SessionConfig{
			Position: position.Config{
				AcquireTimeout: cfg.Tracking.AcquireTimeout,
				Service:        string(cfg.Mode),
			},
			Navigation: navigation.Config{
				RerouteThresholdMeters: cfg.Tracking.RerouteThresholdMeters,
				Service:                string(cfg.Mode),
			},
		}
		handlers.driver = handler.NewDriver(driverHub, routeProvider, sessionCfg, string(cfg.Mode), log)
	default:
		return nil, fmt.Errorf("invalid mode: %s", cfg.Mode)
	}

	mid := middleware.NewMiddleware(gateService, log)

	api := &API{
		mode: cfg.Mode,

		mux:    http.NewServeMux(),
		routes: handlers,
		m:      mid,
		addr:   addr,
		cfg:    cfg,
		log:    log,
	}

	api.server = &http.Server{
		Addr:    api.addr,
		Handler: api.withMiddleware(),
	}

	setupRoutes(api.mux, api.routes, api.m, api.mode, api.log)

	return api, nil
}

func (a *API) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	ctx = wrap.WithAction(ctx, "http_server_stop")

	a.log.Debug(ctx, "shutting down HTTP server...", "address", a.addr)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	a.log.Debug(ctx, "shutting down HTTP server completed")

	return nil
}

func (a *API) Run(ctx context.Context, errCh chan<- error) {
	go func() {
		ctx = wrap.WithAction(ctx, "http_server_start")
		a.log.Info(ctx, "started http server", "address", a.addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
			return
		}
	}()
}

// withMiddleware applies middlewares to the mux
func (a *API) withMiddleware() http.Handler {
	return a.m.Recover(a.m.RequestID(a.m.Logging(a.m.Metrics(string(a.mode))(a.mux))))
}
