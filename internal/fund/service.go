package fund

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ranchhand-app/ranchhand/internal/orders"
	"github.com/ranchhand-app/ranchhand/internal/shared"
)

var ErrInvalidAmount = errors.New("amount must be positive")

// Deduplicator guards the delivered-order deposit so retried events apply
// at most once per transition id.
type Deduplicator interface {
	CheckAndInsert(ctx context.Context, key, module string) error
	Delete(ctx context.Context, key string) error
}

type Service struct {
	repo     Repository
	activity *shared.ActivityRecorder
	dedup    Deduplicator
}

func NewService(repo Repository, activity *shared.ActivityRecorder, dedup Deduplicator) *Service {
	return &Service{repo: repo, activity: activity, dedup: dedup}
}

func (s *Service) Summary(ctx context.Context, limit, offset int) (*Summary, error) {
	balance, err := s.repo.Balance(ctx)
	if err != nil {
		return nil, err
	}
	entries, total, err := s.repo.Entries(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return &Summary{Balance: balance, Entries: entries, Total: total}, nil
}

// Deposit adds amount to the fund. Amounts must be positive; corrections
// go through Adjust.
func (s *Service) Deposit(ctx context.Context, amount decimal.Decimal, description string, actor shared.Actor) (*Entry, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: deposit of %s", ErrInvalidAmount, amount)
	}
	entry, err := s.repo.ApplyDelta(ctx, Entry{
		Type:        TypeDeposit,
		Amount:      amount,
		Description: description,
		ActorID:     actor.ID,
		ActorName:   actor.Name,
	}, amount)
	if err != nil {
		return nil, fmt.Errorf("deposit: %w", err)
	}
	s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     fmt.Sprintf("Deposited $%s to the ranch fund", amount.StringFixed(2)),
		EntityType: "fund",
		EntityID:   fmt.Sprint(entry.ID),
	})
	return entry, nil
}

// Withdraw removes amount from the fund. The balance may go negative;
// the ledger records the resulting shortfall either way.
func (s *Service) Withdraw(ctx context.Context, amount decimal.Decimal, description string, actor shared.Actor) (*Entry, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: withdrawal of %s", ErrInvalidAmount, amount)
	}
	entry, err := s.repo.ApplyDelta(ctx, Entry{
		Type:        TypeWithdrawal,
		Amount:      amount,
		Description: description,
		ActorID:     actor.ID,
		ActorName:   actor.Name,
	}, amount.Neg())
	if err != nil {
		return nil, fmt.Errorf("withdraw: %w", err)
	}
	s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     fmt.Sprintf("Withdrew $%s from the ranch fund", amount.StringFixed(2)),
		EntityType: "fund",
		EntityID:   fmt.Sprint(entry.ID),
	})
	return entry, nil
}

// Adjust sets the balance to newBalance outright. The ledger entry's
// amount records the absolute balance that was set, not a delta.
func (s *Service) Adjust(ctx context.Context, newBalance decimal.Decimal, description string, actor shared.Actor) (*Entry, error) {
	entry, err := s.repo.SetBalance(ctx, Entry{
		Type:        TypeAdjustment,
		Amount:      newBalance,
		Description: description,
		ActorID:     actor.ID,
		ActorName:   actor.Name,
	}, newBalance)
	if err != nil {
		return nil, fmt.Errorf("adjust: %w", err)
	}
	s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     fmt.Sprintf("Adjusted the ranch fund balance to $%s", newBalance.StringFixed(2)),
		EntityType: "fund",
		EntityID:   fmt.Sprint(entry.ID),
	})
	return entry, nil
}

// ApplyDelivered deposits a delivered order's price, keyed on the
// transition id so a retried event deposits nothing the second time. A
// duplicate returns ErrIdempotencyConflict for the caller to drop; a
// failed deposit releases the key so the retry can run.
func (s *Service) ApplyDelivered(ctx context.Context, evt orders.DeliveredEvent) (*Entry, error) {
	// A zero-priced order has nothing to deposit.
	if !evt.Price.IsPositive() {
		return nil, nil
	}
	if err := s.dedup.CheckAndInsert(ctx, evt.TransitionID, "fund"); err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Order #%d delivered for %s", evt.OrderID, evt.CustomerName)
	entry, err := s.Deposit(ctx, evt.Price, description, shared.Actor{ID: evt.ActorID, Name: evt.ActorName})
	if err != nil {
		if delErr := s.dedup.Delete(ctx, evt.TransitionID); delErr != nil {
			return nil, fmt.Errorf("%w (release key: %v)", err, delErr)
		}
		return nil, err
	}
	return entry, nil
}
