package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/ranchhand-app/ranchhand/internal/fund"
	"github.com/ranchhand-app/ranchhand/internal/orders"
	"github.com/ranchhand-app/ranchhand/internal/shared"
)

// FundDepositHandler applies delivered-order deposits to the ranch fund.
type FundDepositHandler struct {
	fund   *fund.Service
	logger *slog.Logger
}

// NewFundDepositHandler constructs the handler.
func NewFundDepositHandler(fundService *fund.Service, logger *slog.Logger) *FundDepositHandler {
	return &FundDepositHandler{fund: fundService, logger: logger}
}

// ProcessTask handles TaskOrderDelivered. A transition id that was
// already applied means an earlier attempt succeeded after the ack was
// lost, so the task is dropped rather than retried.
func (h *FundDepositHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var evt orders.DeliveredEvent
	if err := json.Unmarshal(t.Payload(), &evt); err != nil {
		h.logger.Error("decode delivered event", slog.Any("error", err))
		return asynq.SkipRetry
	}

	entry, err := h.fund.ApplyDelivered(ctx, evt)
	if err != nil {
		if errors.Is(err, shared.ErrIdempotencyConflict) {
			h.logger.Info("deposit already applied",
				slog.String("transition_id", evt.TransitionID),
				slog.Int64("order_id", evt.OrderID))
			return nil
		}
		return err
	}
	if entry != nil {
		h.logger.Info("deposited delivered order",
			slog.Int64("order_id", evt.OrderID),
			slog.String("amount", evt.Price.StringFixed(2)),
			slog.String("balance_after", entry.BalanceAfter.StringFixed(2)))
	}
	return nil
}
