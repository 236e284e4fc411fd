package ranchlog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("log entry not found")

type Repository interface {
	Create(ctx context.Context, entry Entry) (int64, error)
	List(ctx context.Context, category *LogCategory) ([]Entry, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Create(ctx context.Context, entry Entry) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO ranch_logs (description, amount, category, created_by, created_by_name, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id`,
		entry.Description, entry.Amount, entry.Category, entry.CreatedBy, entry.CreatedByName,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert log entry: %w", err)
	}
	return id, nil
}

func (r *repository) List(ctx context.Context, category *LogCategory) ([]Entry, error) {
	query := `SELECT id, description, amount, category, created_by, created_by_name, created_at
		FROM ranch_logs ORDER BY created_at DESC`
	args := []interface{}{}
	if category != nil {
		query = `SELECT id, description, amount, category, created_by, created_by_name, created_at
			FROM ranch_logs WHERE category = $1 ORDER BY created_at DESC`
		args = append(args, *category)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list log entries: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.ID, &entry.Description, &entry.Amount, &entry.Category,
			&entry.CreatedBy, &entry.CreatedByName, &entry.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM ranch_logs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete log entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
