package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreDB owns the connection pool shared by the repositories.
type PostgreDB struct {
	Pool     *pgxpool.Pool
	DBConfig *pgxpool.Config
}

type Config interface {
	GetDSN() string
}

// PoolLimiter is implemented by configs that bound the pool size and
// connection lifetimes.
type PoolLimiter interface {
	PoolLimits() (maxConns, minConns int32, maxConnLifetime, maxConnIdleTime time.Duration)
}

// New parses the DSN, applies any pool limits the config carries and
// verifies connectivity with a ping.
func New(ctx context.Context, config Config) (*PostgreDB, error) {
	dbConfig, err := pgxpool.ParseConfig(config.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}

	if limiter, ok := config.(PoolLimiter); ok {
		dbConfig.MaxConns, dbConfig.MinConns, dbConfig.MaxConnLifetime, dbConfig.MaxConnIdleTime = limiter.PoolLimits()
	}

	pool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgreDB{
		Pool:     pool,
		DBConfig: dbConfig,
	}, nil
}
