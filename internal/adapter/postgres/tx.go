package postgres

import (
	"context"
	"time"

	"github.com/Nhongkham198/pinCustomer/internal/domain/types"
	"github.com/Nhongkham198/pinCustomer/pkg/metrics"
	"github.com/Nhongkham198/pinCustomer/pkg/trm"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Querier interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
}

// TxorDB returns the transaction bound to the context when one exists,
// otherwise the pool itself.
func TxorDB(ctx context.Context, db *pgxpool.Pool) Querier {
	tx, ok := ctx.Value(trm.TxKey).(pgx.Tx)
	if !ok {
		return db
	}
	return tx
}

// recordQuery feeds the database metrics. Only the storefront mode talks to
// postgres, so the service label is fixed.
func recordQuery(operation string, start time.Time, err error) {
	metrics.RecordDatabaseQuery(string(types.StorefrontService), operation, err, time.Since(start))
}
