package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Nhongkham198/pinCustomer/internal/domain/models"
	"github.com/Nhongkham198/pinCustomer/internal/domain/types"
	wrap "github.com/Nhongkham198/pinCustomer/pkg/logger/wrapper"
)

type OrderRepo struct {
	db *pgxpool.Pool
}

func NewOrderRepo(db *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{db: db}
}

// Create persists the order with its cart lines as jsonb. pgx encodes the
// slice through encoding/json.
func (r *OrderRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	const op = "orderRepo.Create"

	query := `
		INSERT INTO orders (customer_name, phone, lines, total, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at;`

	start := time.Now()
	err := TxorDB(ctx, r.db).QueryRow(ctx, query,
		order.CustomerName, order.Phone, order.Lines, order.Total, order.Status,
	).Scan(&order.ID, &order.CreatedAt)
	recordQuery(op, start, err)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	return order, nil
}

func (r *OrderRepo) Get(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	const op = "orderRepo.Get"

	query := `
		SELECT id, customer_name, phone, lines, total, status, created_at
		FROM orders
		WHERE id = $1;`

	var order models.Order
	start := time.Now()
	err := TxorDB(ctx, r.db).QueryRow(ctx, query, orderID).Scan(
		&order.ID, &order.CustomerName, &order.Phone,
		&order.Lines, &order.Total, &order.Status, &order.CreatedAt,
	)
	recordQuery(op, start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrOrderNotFound
		}
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	return &order, nil
}

func (r *OrderRepo) List(ctx context.Context, limit int) ([]models.Order, error) {
	const op = "orderRepo.List"

	query := `
		SELECT id, customer_name, phone, lines, total, status, created_at
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1;`

	start := time.Now()
	rows, err := TxorDB(ctx, r.db).Query(ctx, query, limit)
	recordQuery(op, start, err)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		if err := rows.Scan(
			&order.ID, &order.CustomerName, &order.Phone,
			&order.Lines, &order.Total, &order.Status, &order.CreatedAt,
		); err != nil {
			return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	return orders, nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, orderID uuid.UUID, status types.OrderStatus) error {
	const op = "orderRepo.UpdateStatus"

	query := `UPDATE orders SET status = $2 WHERE id = $1;`

	start := time.Now()
	cmdTag, err := TxorDB(ctx, r.db).Exec(ctx, query, orderID, status)
	recordQuery(op, start, err)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	if cmdTag.RowsAffected() == 0 {
		return types.ErrOrderNotFound
	}

	return nil
}
