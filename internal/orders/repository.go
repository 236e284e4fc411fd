package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("order not found")

// Repository provides PostgreSQL backed persistence for orders. Line
// items and checklist entries live in JSONB columns: the checklist is
// keyed by item index, so both arrays travel with the order row.
type Repository interface {
	Create(ctx context.Context, order Order) (int64, error)
	Get(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	UpdateChecklist(ctx context.Context, id int64, checklist []ChecklistEntry) error
	Delete(ctx context.Context, id int64) error
	SumPriceByStatus(ctx context.Context, status OrderStatus) (decimal.Decimal, error)
	CountByStatus(ctx context.Context, status OrderStatus) (int, error)
	CountDeliveredSince(ctx context.Context, since time.Time) (int, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const orderColumns = `id, customer_name, contact_info, items, subtotal, discount, price,
	description, status, assigned_to, assigned_to_name, notes, checklist,
	created_by, created_by_name, created_at, updated_at`

func (r *repository) Create(ctx context.Context, order Order) (int64, error) {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return 0, fmt.Errorf("marshal items: %w", err)
	}
	checklistJSON, err := json.Marshal(order.Checklist)
	if err != nil {
		return 0, fmt.Errorf("marshal checklist: %w", err)
	}

	var id int64
	err = r.pool.QueryRow(ctx, `
		INSERT INTO orders (customer_name, contact_info, items, subtotal, discount, price,
			description, status, assigned_to, assigned_to_name, notes, checklist,
			created_by, created_by_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		RETURNING id`,
		order.CustomerName, order.ContactInfo, itemsJSON, order.Subtotal, order.Discount,
		order.Price, order.Description, order.Status, order.AssignedTo, order.AssignedToName,
		order.Notes, checklistJSON, order.CreatedBy, order.CreatedByName,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	return id, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Order, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *repository) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if req.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *req.Status)
		argPos++
	}
	if req.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(customer_name ILIKE $%d OR description ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+req.Search+"%")
		argPos++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(`SELECT %s FROM orders%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		orderColumns, where, argPos, argPos+1)
	args = append(args, limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *order)
	}
	return out, total, rows.Err()
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
		fmt.Sprintf(`UPDATE orders SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), argPos),
		args...)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) UpdateChecklist(ctx context.Context, id int64, checklist []ChecklistEntry) error {
	checklistJSON, err := json.Marshal(checklist)
	if err != nil {
		return fmt.Errorf("marshal checklist: %w", err)
	}
	return r.Update(ctx, id, map[string]interface{}{"checklist": checklistJSON})
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) SumPriceByStatus(ctx context.Context, status OrderStatus) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(price), 0) FROM orders WHERE status = $1`, status).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum price by status: %w", err)
	}
	return sum, nil
}

func (r *repository) CountByStatus(ctx context.Context, status OrderStatus) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count by status: %w", err)
	}
	return count, nil
}

func (r *repository) CountDeliveredSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE status = $1 AND updated_at >= $2`, StatusDelivered, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count delivered since: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var (
		order         Order
		itemsJSON     []byte
		checklistJSON []byte
	)
	err := row.Scan(
		&order.ID, &order.CustomerName, &order.ContactInfo, &itemsJSON,
		&order.Subtotal, &order.Discount, &order.Price, &order.Description,
		&order.Status, &order.AssignedTo, &order.AssignedToName, &order.Notes,
		&checklistJSON, &order.CreatedBy, &order.CreatedByName,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
			return nil, fmt.Errorf("unmarshal items: %w", err)
		}
	}
	if len(checklistJSON) > 0 {
		if err := json.Unmarshal(checklistJSON, &order.Checklist); err != nil {
			return nil, fmt.Errorf("unmarshal checklist: %w", err)
		}
	}
	return &order, nil
}
