package gamemap

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("pin not found")

type Repository interface {
	Create(ctx context.Context, pin Pin) (int64, error)
	Get(ctx context.Context, id int64) (*Pin, error)
	List(ctx context.Context, category *PinCategory) ([]Pin, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const pinColumns = `id, x_pct, y_pct, title, description, category, created_by, created_by_name, created_at`

func (r *repository) Create(ctx context.Context, pin Pin) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO map_pins (x_pct, y_pct, title, description, category, created_by, created_by_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id`,
		pin.X, pin.Y, pin.Title, pin.Description, pin.Category, pin.CreatedBy, pin.CreatedByName,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert pin: %w", err)
	}
	return id, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Pin, error) {
	var pin Pin
	err := r.pool.QueryRow(ctx, `SELECT `+pinColumns+` FROM map_pins WHERE id = $1`, id).Scan(
		&pin.ID, &pin.X, &pin.Y, &pin.Title, &pin.Description, &pin.Category,
		&pin.CreatedBy, &pin.CreatedByName, &pin.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get pin: %w", err)
	}
	return &pin, nil
}

func (r *repository) List(ctx context.Context, category *PinCategory) ([]Pin, error) {
	query := `SELECT ` + pinColumns + ` FROM map_pins ORDER BY created_at DESC`
	args := []interface{}{}
	if category != nil {
		query = `SELECT ` + pinColumns + ` FROM map_pins WHERE category = $1 ORDER BY created_at DESC`
		args = append(args, *category)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pins: %w", err)
	}
	defer rows.Close()

	var out []Pin
	for rows.Next() {
		var pin Pin
		if err := rows.Scan(&pin.ID, &pin.X, &pin.Y, &pin.Title, &pin.Description, &pin.Category,
			&pin.CreatedBy, &pin.CreatedByName, &pin.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, pin)
	}
	return out, rows.Err()
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM map_pins WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
