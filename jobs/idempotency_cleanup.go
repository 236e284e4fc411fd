package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ranchhand-app/ranchhand/internal/shared"
)

const idempotencyRetention = 30 * 24 * time.Hour

// IdempotencyCleanupHandler prunes aged idempotency keys. Keys only
// need to outlive the task retry window; a month is generous.
type IdempotencyCleanupHandler struct {
	store  *shared.IdempotencyStore
	logger *slog.Logger
}

// NewIdempotencyCleanupHandler constructs the handler.
func NewIdempotencyCleanupHandler(store *shared.IdempotencyStore, logger *slog.Logger) *IdempotencyCleanupHandler {
	return &IdempotencyCleanupHandler{store: store, logger: logger}
}

// ProcessTask handles TaskIdempotencyCleanup.
func (h *IdempotencyCleanupHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	if err := h.store.Cleanup(ctx, idempotencyRetention); err != nil {
		return err
	}
	h.logger.Info("pruned idempotency keys")
	return nil
}
