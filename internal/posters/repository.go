package posters

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("poster not found")

type Repository interface {
	Create(ctx context.Context, poster Poster) (int64, error)
	Get(ctx context.Context, id int64) (*Poster, error)
	List(ctx context.Context) ([]Poster, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const posterColumns = `id, title, url, thumb_url, ref, thumb_ref, created_by, created_by_name, created_at`

func (r *repository) Create(ctx context.Context, poster Poster) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO posters (title, url, thumb_url, ref, thumb_ref, created_by, created_by_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id`,
		poster.Title, poster.URL, poster.ThumbURL, poster.Ref, poster.ThumbRef,
		poster.CreatedBy, poster.CreatedByName,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert poster: %w", err)
	}
	return id, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Poster, error) {
	var poster Poster
	err := r.pool.QueryRow(ctx, `SELECT `+posterColumns+` FROM posters WHERE id = $1`, id).Scan(
		&poster.ID, &poster.Title, &poster.URL, &poster.ThumbURL, &poster.Ref, &poster.ThumbRef,
		&poster.CreatedBy, &poster.CreatedByName, &poster.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get poster: %w", err)
	}
	return &poster, nil
}

func (r *repository) List(ctx context.Context) ([]Poster, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+posterColumns+` FROM posters ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list posters: %w", err)
	}
	defer rows.Close()

	var out []Poster
	for rows.Next() {
		var poster Poster
		if err := rows.Scan(&poster.ID, &poster.Title, &poster.URL, &poster.ThumbURL,
			&poster.Ref, &poster.ThumbRef, &poster.CreatedBy, &poster.CreatedByName,
			&poster.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, poster)
	}
	return out, rows.Err()
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete poster: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
