package jobs

import (
	"context"

	"github.com/hibiken/asynq"

	"github.com/ranchhand-app/ranchhand/internal/orders"
)

// Client submits jobs to the queue.
type Client struct {
	client *asynq.Client
}

// NewClient constructs an Asynq client.
func NewClient(redisOpts asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpts)}
}

// PublishDelivered enqueues a fund-deposit task for a delivered order.
// Satisfies orders.EventPublisher.
func (c *Client) PublishDelivered(ctx context.Context, evt orders.DeliveredEvent) error {
	task, err := NewOrderDeliveredTask(evt)
	if err != nil {
		return err
	}
	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
	return err
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.client.Close()
}

var _ orders.EventPublisher = (*Client)(nil)
