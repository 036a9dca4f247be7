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

type PinRepo struct {
	db *pgxpool.Pool
}

func NewPinRepo(db *pgxpool.Pool) *PinRepo {
	return &PinRepo{db: db}
}

func (r *PinRepo) Create(ctx context.Context, pin *models.Pin) (*models.Pin, error) {
	const op = "pinRepo.Create"

	query := `
		INSERT INTO pins (name, latitude, longitude, order_value, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at;`

	start := time.Now()
	err := TxorDB(ctx, r.db).QueryRow(ctx, query,
		pin.Name, pin.Location.Lat, pin.Location.Lng, pin.OrderValue, pin.Note,
	).Scan(&pin.ID, &pin.CreatedAt)
	recordQuery(op, start, err)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	return pin, nil
}

func (r *PinRepo) Get(ctx context.Context, pinID uuid.UUID) (*models.Pin, error) {
	const op = "pinRepo.Get"

	query := `
		SELECT id, name, latitude, longitude, order_value, note, created_at
		FROM pins
		WHERE id = $1;`

	var pin models.Pin
	start := time.Now()
	err := TxorDB(ctx, r.db).QueryRow(ctx, query, pinID).Scan(
		&pin.ID, &pin.Name, &pin.Location.Lat, &pin.Location.Lng,
		&pin.OrderValue, &pin.Note, &pin.CreatedAt,
	)
	recordQuery(op, start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrPinNotFound
		}
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	return &pin, nil
}

func (r *PinRepo) List(ctx context.Context) ([]models.Pin, error) {
	const op = "pinRepo.List"

	query := `
		SELECT id, name, latitude, longitude, order_value, note, created_at
		FROM pins
		ORDER BY created_at;`

	start := time.Now()
	rows, err := TxorDB(ctx, r.db).Query(ctx, query)
	recordQuery(op, start, err)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	defer rows.Close()

	var pins []models.Pin
	for rows.Next() {
		var pin models.Pin
		if err := rows.Scan(
			&pin.ID, &pin.Name, &pin.Location.Lat, &pin.Location.Lng,
			&pin.OrderValue, &pin.Note, &pin.CreatedAt,
		); err != nil {
			return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
		}
		pins = append(pins, pin)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	return pins, nil
}

func (r *PinRepo) Delete(ctx context.Context, pinID uuid.UUID) error {
	const op = "pinRepo.Delete"

	query := `DELETE FROM pins WHERE id = $1;`

	start := time.Now()
	cmdTag, err := TxorDB(ctx, r.db).Exec(ctx, query, pinID)
	recordQuery(op, start, err)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	if cmdTag.RowsAffected() == 0 {
		return types.ErrPinNotFound
	}

	return nil
}

// DeleteAll clears the board for an import in replace mode.
func (r *PinRepo) DeleteAll(ctx context.Context) error {
	const op = "pinRepo.DeleteAll"

	start := time.Now()
	_, err := TxorDB(ctx, r.db).Exec(ctx, `DELETE FROM pins;`)
	recordQuery(op, start, err)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	return nil
}
