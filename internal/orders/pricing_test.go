package orders

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeTotalsEmpty(t *testing.T) {
	result := ComputeTotals(nil, dec("25"))

	assert.True(t, result.Subtotal.IsZero())
	assert.True(t, result.DiscountAmount.IsZero())
	assert.True(t, result.Total.IsZero())
}

func TestComputeTotals(t *testing.T) {
	items := []LineItem{
		{CatalogID: 1, Name: "Hay", UnitPrice: dec("0.75"), Quantity: 4},
		{CatalogID: 2, Name: "Milk", UnitPrice: dec("0.75"), Quantity: 2},
		{CatalogID: 3, Name: "Lasso", UnitPrice: dec("8.00"), Quantity: 1},
	}

	result := ComputeTotals(items, decimal.Zero)
	require.True(t, result.Subtotal.Equal(dec("12.50")), "subtotal %s", result.Subtotal)
	assert.True(t, result.Total.Equal(dec("12.50")))

	result = ComputeTotals(items, dec("10"))
	assert.True(t, result.DiscountAmount.Equal(dec("1.25")), "discount %s", result.DiscountAmount)
	assert.True(t, result.Total.Equal(dec("11.25")), "total %s", result.Total)
}

func TestComputeTotalsNoFloatDrift(t *testing.T) {
	// 0.1+0.2 style sums stay exact under decimal arithmetic.
	items := []LineItem{
		{CatalogID: 1, Name: "Sap", UnitPrice: dec("0.10"), Quantity: 1},
		{CatalogID: 2, Name: "Stick", UnitPrice: dec("0.20"), Quantity: 1},
	}
	result := ComputeTotals(items, decimal.Zero)
	assert.True(t, result.Subtotal.Equal(dec("0.30")), "subtotal %s", result.Subtotal)
}

func TestComputeTotalsClampsDiscount(t *testing.T) {
	items := []LineItem{
		{CatalogID: 1, Name: "Hay", UnitPrice: dec("2.00"), Quantity: 5},
	}

	over := ComputeTotals(items, dec("150"))
	assert.True(t, over.DiscountPercent.Equal(dec("100")))
	assert.True(t, over.Total.IsZero(), "total %s", over.Total)

	under := ComputeTotals(items, dec("-20"))
	assert.True(t, under.DiscountPercent.IsZero())
	assert.True(t, under.Total.Equal(dec("10.00")))
}

func TestComputeTotalsMonotonicInDiscount(t *testing.T) {
	items := []LineItem{
		{CatalogID: 1, Name: "Cheese", UnitPrice: dec("0.50"), Quantity: 7},
	}

	prev := ComputeTotals(items, decimal.Zero).Total
	for pct := 5; pct <= 100; pct += 5 {
		total := ComputeTotals(items, decimal.NewFromInt(int64(pct))).Total
		assert.True(t, total.LessThanOrEqual(prev), "total must not increase with discount %d", pct)
		prev = total
	}
	assert.True(t, prev.IsZero())
}

func TestDescribeItems(t *testing.T) {
	assert.Equal(t, "", DescribeItems(nil))

	items := []LineItem{
		{Name: "Hay", Quantity: 2},
		{Name: "Butter", Quantity: 1},
	}
	assert.Equal(t, "2x Hay, 1x Butter", DescribeItems(items))
}
