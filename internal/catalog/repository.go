package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("catalog item not found")

type Repository interface {
	Create(ctx context.Context, item Item) (int64, error)
	CreateBatch(ctx context.Context, items []Item) (int, error)
	Get(ctx context.Context, id int64) (*Item, error)
	List(ctx context.Context, search string, category *ItemCategory) ([]Item, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const itemColumns = `id, name, price, category, created_at, updated_at`

func (r *repository) Create(ctx context.Context, item Item) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO catalog_items (name, price, category, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id`,
		item.Name, item.Price, item.Category,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert catalog item: %w", err)
	}
	return id, nil
}

func (r *repository) CreateBatch(ctx context.Context, items []Item) (int, error) {
	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(`
			INSERT INTO catalog_items (name, price, category, created_at, updated_at)
			VALUES ($1, $2, $3, NOW(), NOW())`,
			item.Name, item.Price, item.Category)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for range items {
		if _, err := results.Exec(); err != nil {
			return inserted, fmt.Errorf("batch insert catalog items: %w", err)
		}
		inserted++
	}
	return inserted, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Item, error) {
	var item Item
	err := r.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM catalog_items WHERE id = $1`, id).Scan(
		&item.ID, &item.Name, &item.Price, &item.Category, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get catalog item: %w", err)
	}
	return &item, nil
}

func (r *repository) List(ctx context.Context, search string, category *ItemCategory) ([]Item, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if search != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argPos))
		args = append(args, "%"+search+"%")
		argPos++
	}
	if category != nil {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argPos))
		args = append(args, *category)
		argPos++
	}

	query := `SELECT ` + itemColumns + ` FROM catalog_items`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list catalog items: %w", err)
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.Category,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	setClauses := make([]string, 0, len(updates)+1)
	args := make([]interface{}, 0, len(updates)+1)
	argPos := 1
	for column, value := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}
	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id)

	tag, err := r.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE catalog_items SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), argPos),
		args...)
	if err != nil {
		return fmt.Errorf("update catalog item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM catalog_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete catalog item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM catalog_items`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count catalog items: %w", err)
	}
	return count, nil
}
