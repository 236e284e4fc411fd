package fund

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ranchhand-app/ranchhand/internal/platform/db"
)

// Repository persists the singleton fund balance and its ledger. Every
// balance change locks the fund row with SELECT FOR UPDATE inside one
// transaction, so concurrent deposits can never lose an update.
type Repository interface {
	Balance(ctx context.Context) (decimal.Decimal, error)
	Entries(ctx context.Context, limit, offset int) ([]Entry, int, error)
	ApplyDelta(ctx context.Context, entry Entry, delta decimal.Decimal) (*Entry, error)
	SetBalance(ctx context.Context, entry Entry, newBalance decimal.Decimal) (*Entry, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// fundRowID pins the singleton balance row.
const fundRowID = 1

func (r *repository) Balance(ctx context.Context) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.pool.QueryRow(ctx, `SELECT balance FROM fund WHERE id = $1`, fundRowID).Scan(&balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("read fund balance: %w", err)
	}
	return balance, nil
}

func (r *repository) Entries(ctx context.Context, limit, offset int) ([]Entry, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM fund_entries`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count fund entries: %w", err)
	}

	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, type, amount, description, balance_after, actor_id, actor_name, created_at
		FROM fund_entries ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list fund entries: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.ID, &entry.Type, &entry.Amount, &entry.Description,
			&entry.BalanceAfter, &entry.ActorID, &entry.ActorName, &entry.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, entry)
	}
	return out, total, rows.Err()
}

// ApplyDelta adds delta to the locked balance and appends the ledger row
// in the same transaction.
func (r *repository) ApplyDelta(ctx context.Context, entry Entry, delta decimal.Decimal) (*Entry, error) {
	return r.apply(ctx, entry, func(balance decimal.Decimal) decimal.Decimal {
		return balance.Add(delta)
	})
}

// SetBalance overwrites the locked balance with newBalance and appends
// the ledger row in the same transaction.
func (r *repository) SetBalance(ctx context.Context, entry Entry, newBalance decimal.Decimal) (*Entry, error) {
	return r.apply(ctx, entry, func(decimal.Decimal) decimal.Decimal {
		return newBalance
	})
}

func (r *repository) apply(ctx context.Context, entry Entry, next func(decimal.Decimal) decimal.Decimal) (*Entry, error) {
	var out Entry
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var balance decimal.Decimal
		err := tx.QueryRow(ctx,
			`SELECT balance FROM fund WHERE id = $1 FOR UPDATE`, fundRowID).Scan(&balance)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("fund row missing: %w", err)
			}
			return fmt.Errorf("lock fund: %w", err)
		}

		newBalance := next(balance)
		if _, err := tx.Exec(ctx,
			`UPDATE fund SET balance = $1, updated_at = NOW() WHERE id = $2`,
			newBalance, fundRowID); err != nil {
			return fmt.Errorf("update fund balance: %w", err)
		}

		out = entry
		out.BalanceAfter = newBalance
		err = tx.QueryRow(ctx, `
			INSERT INTO fund_entries (type, amount, description, balance_after, actor_id, actor_name, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW())
			RETURNING id, created_at`,
			out.Type, out.Amount, out.Description, out.BalanceAfter, out.ActorID, out.ActorName,
		).Scan(&out.ID, &out.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert fund entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
