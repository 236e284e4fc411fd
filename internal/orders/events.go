package orders

import (
	"context"

	"github.com/shopspring/decimal"
)

// DeliveredEvent is emitted once per transition of an order into the
// delivered status. TransitionID is freshly generated for each edge
// traversal; the ranch-fund subscriber deduplicates on it so the
// deposit is applied exactly once even when the event is retried.
type DeliveredEvent struct {
	TransitionID string          `json:"transition_id"`
	OrderID      int64           `json:"order_id"`
	CustomerName string          `json:"customer_name"`
	Price        decimal.Decimal `json:"price"`
	ActorID      int64           `json:"actor_id"`
	ActorName    string          `json:"actor_name"`
}

// EventPublisher hands domain events to the background worker. The asynq
// backed implementation lives in the jobs package.
type EventPublisher interface {
	PublishDelivered(ctx context.Context, evt DeliveredEvent) error
}
