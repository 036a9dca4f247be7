package microservices

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Nhongkham198/pinCustomer/config"
	"github.com/Nhongkham198/pinCustomer/internal/adapter/http/server"
	repo "github.com/Nhongkham198/pinCustomer/internal/adapter/postgres"
	broker "github.com/Nhongkham198/pinCustomer/internal/adapter/rabbit"
	"github.com/Nhongkham198/pinCustomer/internal/service/auth"
	"github.com/Nhongkham198/pinCustomer/internal/service/orders"
	"github.com/Nhongkham198/pinCustomer/internal/service/pins"
	"github.com/Nhongkham198/pinCustomer/pkg/logger"
	"github.com/Nhongkham198/pinCustomer/pkg/postgres"
	"github.com/Nhongkham198/pinCustomer/pkg/rabbit"
	"github.com/Nhongkham198/pinCustomer/pkg/trm"
)

type StorefrontService struct {
	postgresDB *postgres.PostgreDB
	rabbitMQ   *rabbit.RabbitMQ
	httpServer *server.API
	cfg        config.Config
	log        logger.Logger
}

func NewStorefront(ctx context.Context, cfg config.Config, log logger.Logger) (*StorefrontService, error) {
	postgresDB, err := postgres.New(ctx, cfg.Database)
	if err != nil {
		log.Error(ctx, "Failed to setup database", err)
		return nil, err
	}

	rabbitMQ, err := rabbit.New(ctx, cfg.RabbitMQ.GetDSN(), log)
	if err != nil {
		log.Error(ctx, "Failed to setup rabbitmq", err)
		return nil, err
	}

	events := broker.NewStorefrontBroker(rabbitMQ, string(cfg.Mode), log)
	if err := events.Setup(ctx); err != nil {
		log.Error(ctx, "Failed to declare rabbitmq exchanges", err)
		return nil, err
	}

	txManager := trm.New(postgresDB.Pool)

	pinRepo := repo.NewPinRepo(postgresDB.Pool)
	historyRepo := repo.NewHistoryRepo(postgresDB.Pool)
	orderRepo := repo.NewOrderRepo(postgresDB.Pool)

	gateService := auth.NewGateService(cfg.Gate.PIN, cfg.Gate.TokenSecret, cfg.Gate.TokenTTL, log)
	pinService := pins.NewService(pinRepo, historyRepo, events, txManager, string(cfg.Mode), log)
	orderService := orders.NewService(orderRepo, events, txManager, string(cfg.Mode), log)

	httpServer, err := server.New(cfg, gateService, pinService, orderService, nil, nil, log)
	if err != nil {
		log.Error(ctx, "Failed to setup http server", err)
		return nil, err
	}

	return &StorefrontService{
		postgresDB: postgresDB,
		rabbitMQ:   rabbitMQ,
		httpServer: httpServer,
		cfg:        cfg,
		log:        log,
	}, nil
}

func (s *StorefrontService) Start(ctx context.Context) error {
	errCh := make(chan error, 1)

	s.httpServer.Run(ctx, errCh)
	defer func() {
		s.close(ctx)
		s.log.Info(ctx, "storefront service closed")
	}()

	// Waiting signal
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	s.log.Info(ctx, "Storefront service has been started")

	select {
	case errRun := <-errCh:
		return errRun
	case sig := <-shutdownCh:
		s.log.Info(ctx, "shuting down application", "signal", sig.String())
		return nil
	}
}

func (s *StorefrontService) close(ctx context.Context) {
	if s.httpServer != nil {
		if err := s.httpServer.Stop(ctx); err != nil {
			s.log.Warn(ctx, "Failed to gracefully close http server", "error", err.Error())
		}
	}

	if s.rabbitMQ != nil {
		if err := s.rabbitMQ.Close(ctx); err != nil {
			s.log.Warn(ctx, "Failed to gracefully close rabbitmq connection", "error", err.Error())
		}
	}

	if s.postgresDB != nil && s.postgresDB.Pool != nil {
		s.postgresDB.Pool.Close()
	}
}
