package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/ranchhand-app/ranchhand/internal/orders"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskOrderDelivered deposits a delivered order's price into the
	// ranch fund.
	TaskOrderDelivered = "orders:delivered"
	// TaskIdempotencyCleanup prunes aged idempotency keys.
	TaskIdempotencyCleanup = "maintenance:idempotency_cleanup"
)

// NewOrderDeliveredTask constructs an Asynq task from a delivered event.
func NewOrderDeliveredTask(evt orders.DeliveredEvent) (*asynq.Task, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderDelivered, data, asynq.MaxRetry(10)), nil
}

// NewIdempotencyCleanupTask constructs the periodic cleanup task.
func NewIdempotencyCleanupTask() *asynq.Task {
	return asynq.NewTask(TaskIdempotencyCleanup, nil)
}
