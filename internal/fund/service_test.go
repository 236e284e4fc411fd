package fund

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ranchhand-app/ranchhand/internal/orders"
	"github.com/ranchhand-app/ranchhand/internal/shared"
)

type memoryRepo struct {
	balance decimal.Decimal
	entries []Entry
	nextID  int64
}

func newMemoryRepo(balance decimal.Decimal) *memoryRepo {
	return &memoryRepo{balance: balance, nextID: 1}
}

func (r *memoryRepo) Balance(ctx context.Context) (decimal.Decimal, error) {
	return r.balance, nil
}

func (r *memoryRepo) Entries(ctx context.Context, limit, offset int) ([]Entry, int, error) {
	return append([]Entry(nil), r.entries...), len(r.entries), nil
}

func (r *memoryRepo) ApplyDelta(ctx context.Context, entry Entry, delta decimal.Decimal) (*Entry, error) {
	r.balance = r.balance.Add(delta)
	return r.append(entry), nil
}

func (r *memoryRepo) SetBalance(ctx context.Context, entry Entry, newBalance decimal.Decimal) (*Entry, error) {
	r.balance = newBalance
	return r.append(entry), nil
}

func (r *memoryRepo) append(entry Entry) *Entry {
	entry.ID = r.nextID
	r.nextID++
	entry.BalanceAfter = r.balance
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, entry)
	return &entry
}

type memoryDedup struct {
	keys map[string]bool
}

func newMemoryDedup() *memoryDedup {
	return &memoryDedup{keys: make(map[string]bool)}
}

func (d *memoryDedup) CheckAndInsert(ctx context.Context, key, module string) error {
	if d.keys[key] {
		return shared.ErrIdempotencyConflict
	}
	d.keys[key] = true
	return nil
}

func (d *memoryDedup) Delete(ctx context.Context, key string) error {
	delete(d.keys, key)
	return nil
}

func newTestService(repo Repository, dedup Deduplicator) *Service {
	return NewService(repo, shared.NewActivityRecorder(nil, nil), dedup)
}

var actor = shared.Actor{ID: 7, Name: "Arthur"}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDepositIncreasesBalance(t *testing.T) {
	repo := newMemoryRepo(dec("10.00"))
	svc := newTestService(repo, newMemoryDedup())

	entry, err := svc.Deposit(context.Background(), dec("4.25"), "Egg sales", actor)
	require.NoError(t, err)

	assert.Equal(t, TypeDeposit, entry.Type)
	assert.True(t, entry.BalanceAfter.Equal(dec("14.25")), "balance %s", entry.BalanceAfter)
	assert.True(t, repo.balance.Equal(dec("14.25")))
}

func TestWithdrawDecreasesBalance(t *testing.T) {
	repo := newMemoryRepo(dec("10.00"))
	svc := newTestService(repo, newMemoryDedup())

	entry, err := svc.Withdraw(context.Background(), dec("3.00"), "Feed run", actor)
	require.NoError(t, err)

	assert.Equal(t, TypeWithdrawal, entry.Type)
	assert.True(t, repo.balance.Equal(dec("7.00")), "balance %s", repo.balance)
}

func TestNonPositiveAmountsRejected(t *testing.T) {
	svc := newTestService(newMemoryRepo(decimal.Zero), newMemoryDedup())

	_, err := svc.Deposit(context.Background(), decimal.Zero, "", actor)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Deposit(context.Background(), dec("-5"), "", actor)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Withdraw(context.Background(), decimal.Zero, "", actor)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestAdjustLogsAbsoluteBalance(t *testing.T) {
	repo := newMemoryRepo(dec("50.00"))
	svc := newTestService(repo, newMemoryDedup())

	entry, err := svc.Adjust(context.Background(), dec("32.10"), "Recount after card game", actor)
	require.NoError(t, err)

	assert.Equal(t, TypeAdjustment, entry.Type)
	assert.True(t, entry.Amount.Equal(dec("32.10")), "amount %s", entry.Amount)
	assert.True(t, entry.BalanceAfter.Equal(dec("32.10")))
	assert.True(t, repo.balance.Equal(dec("32.10")))
}

func TestApplyDeliveredDepositsOnce(t *testing.T) {
	repo := newMemoryRepo(decimal.Zero)
	svc := newTestService(repo, newMemoryDedup())

	evt := orders.DeliveredEvent{
		TransitionID: "t-1",
		OrderID:      9,
		CustomerName: "Abigail",
		Price:        dec("14.25"),
		ActorID:      actor.ID,
		ActorName:    actor.Name,
	}

	entry, err := svc.ApplyDelivered(context.Background(), evt)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.True(t, repo.balance.Equal(dec("14.25")))

	// The same transition id redelivered deposits nothing.
	_, err = svc.ApplyDelivered(context.Background(), evt)
	assert.ErrorIs(t, err, shared.ErrIdempotencyConflict)
	assert.True(t, repo.balance.Equal(dec("14.25")))
	assert.Len(t, repo.entries, 1)
}

func TestApplyDeliveredDistinctTransitions(t *testing.T) {
	repo := newMemoryRepo(decimal.Zero)
	svc := newTestService(repo, newMemoryDedup())

	evt := orders.DeliveredEvent{TransitionID: "t-1", OrderID: 9, CustomerName: "Abigail", Price: dec("5.00")}
	_, err := svc.ApplyDelivered(context.Background(), evt)
	require.NoError(t, err)

	// The order bounced out of delivered and back in: a new transition id
	// means a second legitimate deposit.
	evt.TransitionID = "t-2"
	_, err = svc.ApplyDelivered(context.Background(), evt)
	require.NoError(t, err)

	assert.True(t, repo.balance.Equal(dec("10.00")), "balance %s", repo.balance)
}

func TestApplyDeliveredZeroPriceNoop(t *testing.T) {
	repo := newMemoryRepo(decimal.Zero)
	svc := newTestService(repo, newMemoryDedup())

	entry, err := svc.ApplyDelivered(context.Background(), orders.DeliveredEvent{
		TransitionID: "t-1", OrderID: 3, Price: decimal.Zero,
	})
	require.NoError(t, err)
	assert.Nil(t, entry)
	assert.Empty(t, repo.entries)
}
