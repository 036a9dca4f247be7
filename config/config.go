package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/Nhongkham198/pinCustomer/internal/domain/types"
	"github.com/Nhongkham198/pinCustomer/pkg/configparser"
)

// Flags
var (
	modeFlag = flag.String("mode", "", "application mode")
)

// Errors
var (
	ErrModeNotProvided = errors.New("mode flag not provided")
)

// Config contains all configuration variables of the application
type (
	Config struct {
		Mode types.ServiceMode

		Database DatabaseConfig
		RabbitMQ RabbitMQConfig
		Services ServicesConfig
		Routing  RoutingConfig
		Tracking TrackingConfig
		Gate     GateConfig
	}

	DatabaseConfig struct {
		Host     string `env:"DATABASE_HOST" default:"localhost"`
		Port     string `env:"DATABASE_PORT" default:"5432"`
		User     string `env:"DATABASE_USER" default:"pincustomer_user"`
		Password string `env:"DATABASE_PASSWORD" default:"pincustomer_pass"`
		Database string `env:"DATABASE_DATABASE" default:"pincustomer_db"`

		MaxConns        int32         `env:"DATABASE_MAXCONNS" default:"20"`
		MinConns        int32         `env:"DATABASE_MINCONNS" default:"2"`
		MaxConnLifetime time.Duration `env:"DATABASE_MAXCONNLIFETIME" default:"30m"`
		MaxConnIdleTime time.Duration `env:"DATABASE_MAXCONNIDLETIME" default:"5m"`
	}

	RabbitMQConfig struct {
		Host     string `env:"RABBITMQ_HOST" default:"localhost"`
		Port     string `env:"RABBITMQ_PORT" default:"5672"`
		User     string `env:"RABBITMQ_USER" default:"guest"`
		Password string `env:"RABBITMQ_PASSWORD" default:"guest"`
	}

	ServicesConfig struct {
		StorefrontService string `env:"SERVICES_STOREFRONT_SERVICE" default:"3000"`
		NavigatorService  string `env:"SERVICES_NAVIGATOR_SERVICE" default:"3001"`
	}

	// RoutingConfig points at an OSRM-compatible routing service.
	RoutingConfig struct {
		BaseURL    string        `env:"ROUTING_BASE_URL" default:"https://router.project-osrm.org"`
		Profile    string        `env:"ROUTING_PROFILE" default:"driving"`
		Geometries string        `env:"ROUTING_GEOMETRIES" default:"geojson"`
		Timeout    time.Duration `env:"ROUTING_TIMEOUT" default:"10s"`
	}

	TrackingConfig struct {
		AcquireTimeout         time.Duration `env:"TRACKING_ACQUIRE_TIMEOUT" default:"8s"`
		RerouteThresholdMeters float64       `env:"TRACKING_REROUTE_THRESHOLD_METERS" default:"40"`
	}

	// GateConfig protects destructive storefront actions behind a PIN.
	GateConfig struct {
		PIN         string        `env:"GATE_PIN" default:"0000"`
		TokenSecret string        `env:"GATE_TOKEN_SECRET" default:"supersecretkey"`
		TokenTTL    time.Duration `env:"GATE_TOKEN_TTL" default:"12h"`
	}
)

// PoolLimits feeds the pgx pool settings.
func (c DatabaseConfig) PoolLimits() (int32, int32, time.Duration, time.Duration) {
	return c.MaxConns, c.MinConns, c.MaxConnLifetime, c.MaxConnIdleTime
}

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

func (c RabbitMQConfig) GetDSN() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		c.User,
		c.Password,
		c.Host,
		c.Port,
	)
}

func NewConfig(filepath string) (*Config, error) {
	cfg := &Config{}

	// Loading enviromental variables and parsing to config struct.
	if err := configparser.LoadAndParseYaml(filepath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load and parse config: %w", err)
	}

	// Parsing flags
	if err := parseFlags(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	return cfg, nil
}

func parseFlags(cfg *Config) error {
	if modeFlag == nil || *modeFlag == "" {
		return ErrModeNotProvided
	}

	cfg.Mode = types.ServiceMode(*modeFlag)

	return nil
}
