package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Nhongkham198/pinCustomer/internal/domain/models"
	wrap "github.com/Nhongkham198/pinCustomer/pkg/logger/wrapper"
)

type HistoryRepo struct {
	db *pgxpool.Pool
}

func NewHistoryRepo(db *pgxpool.Pool) *HistoryRepo {
	return &HistoryRepo{db: db}
}

func (r *HistoryRepo) Create(ctx context.Context, delivered *models.DeliveredPin) (*models.DeliveredPin, error) {
	const op = "historyRepo.Create"

	query := `
		INSERT INTO delivery_history (pin_id, name, latitude, longitude, order_value, note, delivered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;`

	start := time.Now()
	err := TxorDB(ctx, r.db).QueryRow(ctx, query,
		delivered.PinID, delivered.Name,
		delivered.Location.Lat, delivered.Location.Lng,
		delivered.OrderValue, delivered.Note, delivered.DeliveredAt,
	).Scan(&delivered.ID)
	recordQuery(op, start, err)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	return delivered, nil
}

func (r *HistoryRepo) List(ctx context.Context, limit int) ([]models.DeliveredPin, error) {
	const op = "historyRepo.List"

	query := `
		SELECT id, pin_id, name, latitude, longitude, order_value, note, delivered_at
		FROM delivery_history
		ORDER BY delivered_at DESC
		LIMIT $1;`

	start := time.Now()
	rows, err := TxorDB(ctx, r.db).Query(ctx, query, limit)
	recordQuery(op, start, err)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	defer rows.Close()

	var history []models.DeliveredPin
	for rows.Next() {
		var d models.DeliveredPin
		if err := rows.Scan(
			&d.ID, &d.PinID, &d.Name, &d.Location.Lat, &d.Location.Lng,
			&d.OrderValue, &d.Note, &d.DeliveredAt,
		); err != nil {
			return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
		}
		history = append(history, d)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	return history, nil
}
