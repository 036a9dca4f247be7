package microservices

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Nhongkham198/pinCustomer/config"
	"github.com/Nhongkham198/pinCustomer/internal/adapter/http/server"
	"github.com/Nhongkham198/pinCustomer/internal/adapter/osrm"
	"github.com/Nhongkham198/pinCustomer/pkg/logger"
	ws "github.com/Nhongkham198/pinCustomer/pkg/wsHub"
)

// NavigatorService keeps no database: every tracking session lives and
// dies with its WebSocket connection.
type NavigatorService struct {
	hub        *ws.ConnectionHub
	httpServer *server.API
	cfg        config.Config
	log        logger.Logger
}

func NewNavigator(ctx context.Context, cfg config.Config, log logger.Logger) (*NavigatorService, error) {
	routingClient := osrm.New(osrm.Config{
		BaseURL:    cfg.Routing.BaseURL,
		Profile:    cfg.Routing.Profile,
		Geometries: cfg.Routing.Geometries,
		Timeout:    cfg.Routing.Timeout,
		Service:    string(cfg.Mode),
	}, log)

	hub := ws.NewConnHub(log)

	httpServer, err := server.New(cfg, nil, nil, nil, hub, routingClient, log)
	if err != nil {
		log.Error(ctx, "Failed to setup http server", err)
		return nil, err
	}

	return &NavigatorService{
		hub:        hub,
		httpServer: httpServer,
		cfg:        cfg,
		log:        log,
	}, nil
}

func (s *NavigatorService) Start(ctx context.Context) error {
	errCh := make(chan error, 1)

	s.httpServer.Run(ctx, errCh)
	defer func() {
		s.close(ctx)
		s.log.Info(ctx, "navigator service closed")
	}()

	// Waiting signal
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	s.log.Info(ctx, "Navigator service has been started")

	select {
	case errRun := <-errCh:
		return errRun
	case sig := <-shutdownCh:
		s.log.Info(ctx, "shuting down application", "signal", sig.String())
		return nil
	}
}

func (s *NavigatorService) close(ctx context.Context) {
	if s.hub != nil {
		s.hub.Close()
	}

	if s.httpServer != nil {
		if err := s.httpServer.Stop(ctx); err != nil {
			s.log.Warn(ctx, "Failed to gracefully close http server", "error", err.Error())
		}
	}
}
