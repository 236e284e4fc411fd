package todos

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("todo not found")

type Repository interface {
	Create(ctx context.Context, todo Todo) (int64, error)
	Get(ctx context.Context, id int64) (*Todo, error)
	List(ctx context.Context) ([]Todo, error)
	SetCompletion(ctx context.Context, todo *Todo) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const todoColumns = `id, text, is_completed, completed_by, completed_by_name, completed_at,
	created_by, created_by_name, created_at`

func (r *repository) Create(ctx context.Context, todo Todo) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO todos (text, is_completed, created_by, created_by_name, created_at)
		VALUES ($1, FALSE, $2, $3, NOW())
		RETURNING id`,
		todo.Text, todo.CreatedBy, todo.CreatedByName,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert todo: %w", err)
	}
	return id, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Todo, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = $1`, id)
	todo, err := scanTodo(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return todo, nil
}

func (r *repository) List(ctx context.Context) ([]Todo, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+todoColumns+` FROM todos ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	var out []Todo
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *todo)
	}
	return out, rows.Err()
}

func (r *repository) SetCompletion(ctx context.Context, todo *Todo) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE todos SET is_completed = $1, completed_by = $2, completed_by_name = $3, completed_at = $4
		WHERE id = $5`,
		todo.IsCompleted, todo.CompletedBy, todo.CompletedByName, todo.CompletedAt, todo.ID)
	if err != nil {
		return fmt.Errorf("set todo completion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (*Todo, error) {
	var todo Todo
	err := row.Scan(&todo.ID, &todo.Text, &todo.IsCompleted, &todo.CompletedBy,
		&todo.CompletedByName, &todo.CompletedAt, &todo.CreatedBy, &todo.CreatedByName,
		&todo.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &todo, nil
}
