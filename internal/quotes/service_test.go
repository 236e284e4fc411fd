package quotes

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
	quotes      map[int64]*Quote
	orders      map[int64]*orders.Order
	nextQuote   int64
	nextOrder   int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		quotes:    make(map[int64]*Quote),
		orders:    make(map[int64]*orders.Order),
		nextQuote: 1,
		nextOrder: 100,
	}
}

func (r *memoryRepo) Create(ctx context.Context, quote Quote) (int64, error) {
	id := r.nextQuote
	r.nextQuote++
	quote.ID = id
	quote.CreatedAt = time.Now()
	quote.UpdatedAt = quote.CreatedAt
	r.quotes[id] = &quote
	return id, nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (*Quote, error) {
	quote, ok := r.quotes[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *quote
	clone.Items = append([]orders.LineItem(nil), quote.Items...)
	return &clone, nil
}

func (r *memoryRepo) List(ctx context.Context, req ListQuotesRequest) ([]Quote, int, error) {
	var out []Quote
	for _, quote := range r.quotes {
		if req.Status != nil && quote.Status != *req.Status {
			continue
		}
		out = append(out, *quote)
	}
	return out, len(out), nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	quote, ok := r.quotes[id]
	if !ok {
		return ErrNotFound
	}
	for column, value := range updates {
		switch column {
		case "customer_name":
			quote.CustomerName = value.(string)
		case "status":
			quote.Status = value.(QuoteStatus)
		case "subtotal":
			quote.Subtotal = value.(decimal.Decimal)
		case "discount":
			quote.Discount = value.(decimal.Decimal)
		case "estimated_price":
			quote.EstimatedPrice = value.(decimal.Decimal)
		}
	}
	quote.UpdatedAt = time.Now()
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.quotes[id]; !ok {
		return ErrNotFound
	}
	delete(r.quotes, id)
	return nil
}

func (r *memoryRepo) Convert(ctx context.Context, id int64, order orders.Order) (int64, error) {
	quote, ok := r.quotes[id]
	if !ok {
		return 0, ErrNotFound
	}
	if quote.ConvertedOrderID != nil {
		return 0, ErrAlreadyConverted
	}
	orderID := r.nextOrder
	r.nextOrder++
	order.ID = orderID
	r.orders[orderID] = &order
	quote.Status = StatusAccepted
	quote.ConvertedOrderID = &orderID
	return orderID, nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, shared.NewActivityRecorder(nil, nil))
}

var actor = shared.Actor{ID: 7, Name: "Arthur"}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCreatePricesQuote(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	quote, err := svc.Create(context.Background(), CreateQuoteRequest{
		CustomerName:   "Arthur",
		RequestedItems: "Hay for the horses",
		Items: []orders.LineItemRequest{
			{CatalogID: 1, Name: "Hay", UnitPrice: dec("0.75"), Quantity: 10},
		},
		Discount: dec("10"),
	}, actor)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, quote.Status)
	assert.True(t, quote.Subtotal.Equal(dec("7.50")), "subtotal %s", quote.Subtotal)
	assert.True(t, quote.EstimatedPrice.Equal(dec("6.75")), "estimated %s", quote.EstimatedPrice)
	assert.Nil(t, quote.ConvertedOrderID)
}

func TestConvertCreatesOutstandingOrder(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)

	quote, err := svc.Create(context.Background(), CreateQuoteRequest{
		CustomerName:   "Arthur",
		RequestedItems: "Hay for the horses",
		Items: []orders.LineItemRequest{
			{CatalogID: 1, Name: "Hay", UnitPrice: dec("0.75"), Quantity: 10},
		},
		Discount: dec("10"),
	}, actor)
	require.NoError(t, err)

	converted, err := svc.Convert(context.Background(), quote.ID, actor)
	require.NoError(t, err)

	assert.Equal(t, StatusAccepted, converted.Status)
	require.NotNil(t, converted.ConvertedOrderID)

	order := repo.orders[*converted.ConvertedOrderID]
	require.NotNil(t, order)
	assert.Equal(t, orders.StatusOutstanding, order.Status)
	assert.Equal(t, "Arthur", order.CustomerName)
	assert.Equal(t, "Hay for the horses", order.Description)
	assert.True(t, order.Price.Equal(quote.EstimatedPrice))
	assert.Nil(t, order.AssignedTo)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 10, order.Items[0].Quantity)
	assert.Len(t, order.Checklist, 1)
}

func TestConvertRefusesSecondConversion(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)

	quote, err := svc.Create(context.Background(), CreateQuoteRequest{
		CustomerName: "Mary-Beth",
		Items: []orders.LineItemRequest{
			{CatalogID: 2, Name: "Butter", UnitPrice: dec("0.50"), Quantity: 1},
		},
	}, actor)
	require.NoError(t, err)

	_, err = svc.Convert(context.Background(), quote.ID, actor)
	require.NoError(t, err)

	_, err = svc.Convert(context.Background(), quote.ID, actor)
	assert.ErrorIs(t, err, ErrAlreadyConverted)
	assert.Len(t, repo.orders, 1)
}

func TestConvertMissingQuote(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	_, err := svc.Convert(context.Background(), 42, actor)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConvertFallsBackToItemDescription(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)

	quote, err := svc.Create(context.Background(), CreateQuoteRequest{
		CustomerName: "Kieran",
		Items: []orders.LineItemRequest{
			{CatalogID: 1, Name: "Hay", UnitPrice: dec("0.75"), Quantity: 2},
			{CatalogID: 2, Name: "Oats", UnitPrice: dec("0.60"), Quantity: 1},
		},
	}, actor)
	require.NoError(t, err)

	converted, err := svc.Convert(context.Background(), quote.ID, actor)
	require.NoError(t, err)

	order := repo.orders[*converted.ConvertedOrderID]
	assert.Equal(t, "2x Hay, 1x Oats", order.Description)
}

func TestUpdateRepricesOnDiscountChange(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	quote, err := svc.Create(context.Background(), CreateQuoteRequest{
		CustomerName: "Lenny",
		Items: []orders.LineItemRequest{
			{CatalogID: 1, Name: "Hay", UnitPrice: dec("1.00"), Quantity: 10},
		},
	}, actor)
	require.NoError(t, err)
	require.True(t, quote.EstimatedPrice.Equal(dec("10.00")))

	discount := dec("25")
	updated, err := svc.Update(context.Background(), quote.ID, UpdateQuoteRequest{Discount: &discount}, actor)
	require.NoError(t, err)

	assert.True(t, updated.EstimatedPrice.Equal(dec("7.50")), "estimated %s", updated.EstimatedPrice)
}

func TestUpdateRejectsStatusEditAfterConversion(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)

	quote, err := svc.Create(context.Background(), CreateQuoteRequest{
		CustomerName: "Tilly",
		Items: []orders.LineItemRequest{
			{CatalogID: 1, Name: "Hay", UnitPrice: dec("0.75"), Quantity: 1},
		},
	}, actor)
	require.NoError(t, err)

	_, err = svc.Convert(context.Background(), quote.ID, actor)
	require.NoError(t, err)

	rejected := StatusRejected
	_, err = svc.Update(context.Background(), quote.ID, UpdateQuoteRequest{Status: &rejected}, actor)
	assert.ErrorIs(t, err, ErrAlreadyConverted)
}
