package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Entry is a read-model row of the global feed. Writes go through
// shared.ActivityRecorder; this package only lists.
type Entry struct {
	ID         int64     `json:"id"`
	ActorID    int64     `json:"actor_id"`
	ActorName  string    `json:"actor_name"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	At         time.Time `json:"at"`
}

type Repository interface {
	List(ctx context.Context, limit int) ([]Entry, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, actor_id, actor_name, action, entity_type, entity_id, occurred_at
		FROM activity ORDER BY occurred_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.ID, &entry.ActorID, &entry.ActorName, &entry.Action,
			&entry.EntityType, &entry.EntityID, &entry.At); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}
