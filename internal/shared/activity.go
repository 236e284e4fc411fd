package shared

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ActivityEntry represents one row of the global activity feed.
type ActivityEntry struct {
	ActorID    int64
	ActorName  string
	Action     string
	EntityType string
	EntityID   string
	At         time.Time
}

// ActivityRecorder appends rows to the activity feed. Recording is
// best-effort: failures are logged and never propagated to the caller,
// so a feed outage cannot fail the primary operation.
type ActivityRecorder struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewActivityRecorder returns a new ActivityRecorder.
func NewActivityRecorder(pool *pgxpool.Pool, logger *slog.Logger) *ActivityRecorder {
	return &ActivityRecorder{pool: pool, logger: logger}
}

// Record appends the entry to the feed, swallowing errors. A nil
// recorder is a no-op.
func (r *ActivityRecorder) Record(ctx context.Context, entry ActivityEntry) {
	if r == nil {
		return
	}
	if err := r.record(ctx, entry); err != nil && r.logger != nil {
		r.logger.Warn("record activity", slog.Any("error", err), slog.String("action", entry.Action))
	}
}

func (r *ActivityRecorder) record(ctx context.Context, entry ActivityEntry) error {
	if r.pool == nil {
		return errors.New("activity recorder not initialised")
	}
	if entry.Action == "" || entry.EntityType == "" {
		return errors.New("activity entry requires action/entity_type")
	}
	at := entry.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO activity (actor_id, actor_name, action, entity_type, entity_id, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ActorID, entry.ActorName, entry.Action, entry.EntityType, entry.EntityID, at)
	return err
}
