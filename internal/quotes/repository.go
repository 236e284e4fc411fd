package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ranchhand-app/ranchhand/internal/orders"
	"github.com/ranchhand-app/ranchhand/internal/platform/db"
)

var (
	ErrNotFound         = errors.New("quote not found")
	ErrAlreadyConverted = errors.New("quote already converted")
)

// Repository provides PostgreSQL backed persistence for quotes. Convert
// runs as a single transaction: the quote row is locked, the order is
// created, and the quote is marked accepted with the back-reference in
// one commit, so a crash can never leave an order without its quote
// pointing at it.
type Repository interface {
	Create(ctx context.Context, quote Quote) (int64, error)
	Get(ctx context.Context, id int64) (*Quote, error)
	List(ctx context.Context, req ListQuotesRequest) ([]Quote, int, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	Convert(ctx context.Context, id int64, order orders.Order) (int64, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const quoteColumns = `id, customer_name, contact_info, requested_items, items, subtotal,
	discount, estimated_price, status, notes, converted_order_id,
	created_by, created_by_name, created_at, updated_at`

func (r *repository) Create(ctx context.Context, quote Quote) (int64, error) {
	itemsJSON, err := json.Marshal(quote.Items)
	if err != nil {
		return 0, fmt.Errorf("marshal items: %w", err)
	}

	var id int64
	err = r.pool.QueryRow(ctx, `
		INSERT INTO quotes (customer_name, contact_info, requested_items, items, subtotal,
			discount, estimated_price, status, notes,
			created_by, created_by_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id`,
		quote.CustomerName, quote.ContactInfo, quote.RequestedItems, itemsJSON,
		quote.Subtotal, quote.Discount, quote.EstimatedPrice, quote.Status, quote.Notes,
		quote.CreatedBy, quote.CreatedByName,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert quote: %w", err)
	}
	return id, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Quote, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, id)
	quote, err := scanQuote(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return quote, nil
}

func (r *repository) List(ctx context.Context, req ListQuotesRequest) ([]Quote, int, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if req.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *req.Status)
		argPos++
	}
	if req.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(customer_name ILIKE $%d OR requested_items ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+req.Search+"%")
		argPos++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM quotes`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count quotes: %w", err)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(`SELECT %s FROM quotes%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		quoteColumns, where, argPos, argPos+1)
	args = append(args, limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	var out []Quote
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *quote)
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
		fmt.Sprintf(`UPDATE quotes SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), argPos),
		args...)
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Convert(ctx context.Context, id int64, order orders.Order) (int64, error) {
	var orderID int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var (
			status           QuoteStatus
			convertedOrderID *int64
		)
		err := tx.QueryRow(ctx,
			`SELECT status, converted_order_id FROM quotes WHERE id = $1 FOR UPDATE`, id,
		).Scan(&status, &convertedOrderID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("lock quote: %w", err)
		}
		if convertedOrderID != nil {
			return ErrAlreadyConverted
		}

		itemsJSON, err := json.Marshal(order.Items)
		if err != nil {
			return fmt.Errorf("marshal items: %w", err)
		}
		checklistJSON, err := json.Marshal(order.Checklist)
		if err != nil {
			return fmt.Errorf("marshal checklist: %w", err)
		}
		err = tx.QueryRow(ctx, `
			INSERT INTO orders (customer_name, contact_info, items, subtotal, discount, price,
				description, status, notes, checklist, created_by, created_by_name,
				created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
			RETURNING id`,
			order.CustomerName, order.ContactInfo, itemsJSON, order.Subtotal, order.Discount,
			order.Price, order.Description, order.Status, order.Notes, checklistJSON,
			order.CreatedBy, order.CreatedByName,
		).Scan(&orderID)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		_, err = tx.Exec(ctx,
			`UPDATE quotes SET status = $1, converted_order_id = $2, updated_at = NOW() WHERE id = $3`,
			StatusAccepted, orderID, id)
		if err != nil {
			return fmt.Errorf("mark quote accepted: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return orderID, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuote(row rowScanner) (*Quote, error) {
	var (
		quote     Quote
		itemsJSON []byte
	)
	err := row.Scan(
		&quote.ID, &quote.CustomerName, &quote.ContactInfo, &quote.RequestedItems,
		&itemsJSON, &quote.Subtotal, &quote.Discount, &quote.EstimatedPrice,
		&quote.Status, &quote.Notes, &quote.ConvertedOrderID,
		&quote.CreatedBy, &quote.CreatedByName, &quote.CreatedAt, &quote.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &quote.Items); err != nil {
			return nil, fmt.Errorf("unmarshal items: %w", err)
		}
	}
	return &quote, nil
}
