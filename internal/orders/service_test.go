package orders

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ranchhand-app/ranchhand/internal/shared"
	"github.com/ranchhand-app/ranchhand/internal/users"
)

// ============================================================================
// MOCK REPOSITORY
// ============================================================================

type memoryRepo struct {
	orders map[int64]*Order
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{orders: make(map[int64]*Order), nextID: 1}
}

func (r *memoryRepo) Create(ctx context.Context, order Order) (int64, error) {
	id := r.nextID
	r.nextID++
	order.ID = id
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	r.orders[id] = &order
	return id, nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (*Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *order
	clone.Items = append([]LineItem(nil), order.Items...)
	clone.Checklist = append([]ChecklistEntry(nil), order.Checklist...)
	return &clone, nil
}

func (r *memoryRepo) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	var out []Order
	for _, order := range r.orders {
		if req.Status != nil && order.Status != *req.Status {
			continue
		}
		out = append(out, *order)
	}
	return out, len(out), nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	order, ok := r.orders[id]
	if !ok {
		return ErrNotFound
	}
	for column, value := range updates {
		switch column {
		case "status":
			order.Status = value.(OrderStatus)
		case "customer_name":
			order.CustomerName = value.(string)
		case "assigned_to":
			order.AssignedTo, _ = value.(*int64)
		case "assigned_to_name":
			order.AssignedToName, _ = value.(*string)
		case "price":
			order.Price = value.(decimal.Decimal)
		case "subtotal":
			order.Subtotal = value.(decimal.Decimal)
		case "discount":
			order.Discount = value.(decimal.Decimal)
		}
	}
	order.UpdatedAt = time.Now()
	return nil
}

func (r *memoryRepo) UpdateChecklist(ctx context.Context, id int64, checklist []ChecklistEntry) error {
	order, ok := r.orders[id]
	if !ok {
		return ErrNotFound
	}
	order.Checklist = append([]ChecklistEntry(nil), checklist...)
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.orders[id]; !ok {
		return ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *memoryRepo) SumPriceByStatus(ctx context.Context, status OrderStatus) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, order := range r.orders {
		if order.Status == status {
			sum = sum.Add(order.Price)
		}
	}
	return sum, nil
}

func (r *memoryRepo) CountByStatus(ctx context.Context, status OrderStatus) (int, error) {
	count := 0
	for _, order := range r.orders {
		if order.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *memoryRepo) CountDeliveredSince(ctx context.Context, since time.Time) (int, error) {
	count := 0
	for _, order := range r.orders {
		if order.Status == StatusDelivered && !order.UpdatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

type capturedEvents struct {
	delivered []DeliveredEvent
}

func (c *capturedEvents) PublishDelivered(ctx context.Context, evt DeliveredEvent) error {
	c.delivered = append(c.delivered, evt)
	return nil
}

type stubDirectory struct {
	names map[int64]string
}

func (d *stubDirectory) Get(ctx context.Context, id int64) (*users.User, error) {
	name, ok := d.names[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	return &users.User{ID: id, Name: name}, nil
}

func newTestService(repo Repository, events EventPublisher) *Service {
	directory := &stubDirectory{names: map[int64]string{
		11: "Javier",
		12: "Charles",
	}}
	return NewService(repo, directory, shared.NewActivityRecorder(nil, nil), events)
}

var actor = shared.Actor{ID: 7, Name: "Arthur"}

// ============================================================================
// TESTS
// ============================================================================

func TestCreateDefaultsDescriptionFromItems(t *testing.T) {
	svc := newTestService(newMemoryRepo(), &capturedEvents{})

	order, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerName: "Dutch",
		Items: []LineItemRequest{
			{CatalogID: 1, Name: "Hay", UnitPrice: dec("0.75"), Quantity: 2},
			{CatalogID: 2, Name: "Butter", UnitPrice: dec("0.50"), Quantity: 1},
		},
		Discount: dec("10"),
	}, actor)
	require.NoError(t, err)

	assert.Equal(t, "2x Hay, 1x Butter", order.Description)
	assert.Equal(t, StatusOutstanding, order.Status)
	assert.True(t, order.Subtotal.Equal(dec("2.00")), "subtotal %s", order.Subtotal)
	assert.True(t, order.Price.Equal(dec("1.80")), "price %s", order.Price)
	assert.Len(t, order.Checklist, 2)
}

func TestCreateMergesDuplicateCatalogLines(t *testing.T) {
	svc := newTestService(newMemoryRepo(), &capturedEvents{})

	order, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerName: "Hosea",
		Items: []LineItemRequest{
			{CatalogID: 1, Name: "Hay", UnitPrice: dec("0.75"), Quantity: 1},
			{CatalogID: 1, Name: "Hay", UnitPrice: dec("0.75"), Quantity: 1},
		},
	}, actor)
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
}

func TestCreateResolvesAssigneeName(t *testing.T) {
	svc := newTestService(newMemoryRepo(), &capturedEvents{})

	assignee := int64(11)
	order, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerName: "Sadie",
		Items:        []LineItemRequest{{CatalogID: 1, Name: "Hay", UnitPrice: dec("0.75"), Quantity: 1}},
		AssignedTo:   &assignee,
	}, actor)
	require.NoError(t, err)

	require.NotNil(t, order.AssignedTo)
	assert.Equal(t, int64(11), *order.AssignedTo)
	require.NotNil(t, order.AssignedToName)
	assert.Equal(t, "Javier", *order.AssignedToName)
}

func TestCreateRejectsUnknownAssignee(t *testing.T) {
	svc := newTestService(newMemoryRepo(), &capturedEvents{})

	assignee := int64(404)
	_, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerName: "Sadie",
		Items:        []LineItemRequest{{CatalogID: 1, Name: "Hay", UnitPrice: dec("0.75"), Quantity: 1}},
		AssignedTo:   &assignee,
	}, actor)
	assert.ErrorIs(t, err, ErrUnknownAssignee)
}

func TestUpdateReassignsAndClearsAssignee(t *testing.T) {
	svc := newTestService(newMemoryRepo(), &capturedEvents{})

	first := int64(11)
	order, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerName: "Sadie",
		Items:        []LineItemRequest{{CatalogID: 1, Name: "Hay", UnitPrice: dec("0.75"), Quantity: 1}},
		AssignedTo:   &first,
	}, actor)
	require.NoError(t, err)

	second := int64(12)
	order, err = svc.Update(context.Background(), order.ID, UpdateOrderRequest{AssignedTo: &second}, actor)
	require.NoError(t, err)
	require.NotNil(t, order.AssignedToName)
	assert.Equal(t, "Charles", *order.AssignedToName)

	unassigned := int64(0)
	order, err = svc.Update(context.Background(), order.ID, UpdateOrderRequest{AssignedTo: &unassigned}, actor)
	require.NoError(t, err)
	assert.Nil(t, order.AssignedTo)
	assert.Nil(t, order.AssignedToName)
}

func TestGetReconcilesShortChecklist(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo, &capturedEvents{})

	checkedAt := time.Now()
	by := int64(3)
	byName := "Sadie"
	id, err := repo.Create(context.Background(), Order{
		CustomerName: "Charles",
		Items: []LineItem{
			{CatalogID: 1, Name: "Hay", UnitPrice: dec("0.75"), Quantity: 1},
			{CatalogID: 2, Name: "Milk", UnitPrice: dec("0.75"), Quantity: 1},
			{CatalogID: 3, Name: "Eggs", UnitPrice: dec("0.75"), Quantity: 1},
		},
		Checklist: []ChecklistEntry{
			{Checked: true, CheckedBy: &by, CheckedByName: &byName, CheckedAt: &checkedAt},
		},
		Status: StatusOutstanding,
	})
	require.NoError(t, err)

	order, err := svc.Get(context.Background(), id)
	require.NoError(t, err)

	require.Len(t, order.Checklist, 3)
	assert.True(t, order.Checklist[0].Checked)
	assert.False(t, order.Checklist[1].Checked)
	assert.False(t, order.Checklist[2].Checked)
}

func TestToggleChecklistItem(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo, &capturedEvents{})

	id, err := repo.Create(context.Background(), Order{
		CustomerName: "John",
		Items: []LineItem{
			{CatalogID: 1, Name: "Hay", UnitPrice: dec("0.75"), Quantity: 2},
		},
		Status: StatusOutstanding,
	})
	require.NoError(t, err)

	order, err := svc.ToggleChecklistItem(context.Background(), id, 0, actor)
	require.NoError(t, err)

	entry := order.Checklist[0]
	assert.True(t, entry.Checked)
	require.NotNil(t, entry.CheckedBy)
	assert.Equal(t, actor.ID, *entry.CheckedBy)
	require.NotNil(t, entry.CheckedByName)
	assert.Equal(t, actor.Name, *entry.CheckedByName)
	assert.NotNil(t, entry.CheckedAt)

	// Toggling off resets the whole entry, not just the flag.
	order, err = svc.ToggleChecklistItem(context.Background(), id, 0, actor)
	require.NoError(t, err)

	entry = order.Checklist[0]
	assert.False(t, entry.Checked)
	assert.Nil(t, entry.CheckedBy)
	assert.Nil(t, entry.CheckedByName)
	assert.Nil(t, entry.CheckedAt)
}

func TestToggleChecklistItemErrors(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo, &capturedEvents{})

	_, err := svc.ToggleChecklistItem(context.Background(), 99, 0, actor)
	assert.ErrorIs(t, err, ErrNotFound)

	id, err := repo.Create(context.Background(), Order{
		CustomerName: "Micah",
		Items:        []LineItem{{CatalogID: 1, Name: "Hay", UnitPrice: dec("0.75"), Quantity: 1}},
		Status:       StatusOutstanding,
	})
	require.NoError(t, err)

	_, err = svc.ToggleChecklistItem(context.Background(), id, 5, actor)
	assert.ErrorIs(t, err, ErrInvalidIndex)
}

func TestUpdateToDeliveredPublishesOneEvent(t *testing.T) {
	repo := newMemoryRepo()
	events := &capturedEvents{}
	svc := newTestService(repo, events)

	id, err := repo.Create(context.Background(), Order{
		CustomerName: "Abigail",
		Price:        dec("14.25"),
		Status:       StatusReady,
	})
	require.NoError(t, err)

	delivered := StatusDelivered
	_, err = svc.Update(context.Background(), id, UpdateOrderRequest{Status: &delivered}, actor)
	require.NoError(t, err)

	require.Len(t, events.delivered, 1)
	evt := events.delivered[0]
	assert.Equal(t, id, evt.OrderID)
	assert.Equal(t, "Abigail", evt.CustomerName)
	assert.True(t, evt.Price.Equal(dec("14.25")))
	assert.NotEmpty(t, evt.TransitionID)

	// A repeated delivered update is not a transition and emits nothing.
	_, err = svc.Update(context.Background(), id, UpdateOrderRequest{Status: &delivered}, actor)
	require.NoError(t, err)
	assert.Len(t, events.delivered, 1)
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo, &capturedEvents{})

	id, err := repo.Create(context.Background(), Order{CustomerName: "Bill", Status: StatusOutstanding})
	require.NoError(t, err)

	bogus := OrderStatus("shipped")
	_, err = svc.Update(context.Background(), id, UpdateOrderRequest{Status: &bogus}, actor)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestStats(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo, &capturedEvents{})
	ctx := context.Background()

	_, _ = repo.Create(ctx, Order{CustomerName: "A", Price: dec("5.00"), Status: StatusOutstanding})
	_, _ = repo.Create(ctx, Order{CustomerName: "B", Price: dec("2.50"), Status: StatusOutstanding})
	_, _ = repo.Create(ctx, Order{CustomerName: "C", Price: dec("9.00"), Status: StatusReady})
	_, _ = repo.Create(ctx, Order{CustomerName: "D", Price: dec("1.00"), Status: StatusDelivered})

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)

	assert.True(t, stats.TotalOutstanding.Equal(dec("7.50")), "outstanding %s", stats.TotalOutstanding)
	assert.Equal(t, 1, stats.PendingDeliveries)
	assert.Equal(t, 1, stats.CompletedToday)
}

func TestChecklistProgress(t *testing.T) {
	order := &Order{
		Items: []LineItem{{Name: "Hay"}, {Name: "Milk"}},
		Checklist: []ChecklistEntry{
			{Checked: true},
			{Checked: false},
			{Checked: true}, // stale trailing entry, ignored
		},
	}
	checked, total := ChecklistProgress(order)
	assert.Equal(t, 1, checked)
	assert.Equal(t, 2, total)

	checked, total = ChecklistProgress(&Order{})
	assert.Zero(t, checked)
	assert.Zero(t, total)
}
