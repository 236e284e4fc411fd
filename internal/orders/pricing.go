package orders

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PricingResult is derived from a line-item list and a discount
// percentage. It is computed on demand and never stored.
type PricingResult struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	Total           decimal.Decimal `json:"total"`
}

// ComputeTotals prices a line-item list. The discount percentage is
// clamped to [0,100] before use; out-of-range input is never an error.
// An empty list yields all-zero totals.
func ComputeTotals(items []LineItem, discountPercent decimal.Decimal) PricingResult {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	pct := clampPercent(discountPercent)
	discountAmount := subtotal.Mul(pct).Div(hundred)
	total := subtotal.Sub(discountAmount)

	return PricingResult{
		Subtotal:        subtotal,
		DiscountPercent: pct,
		DiscountAmount:  discountAmount,
		Total:           total,
	}
}

// DescribeItems renders a human-readable item summary, used as the
// fallback order description when no free text is supplied.
func DescribeItems(items []LineItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%dx %s", item.Quantity, item.Name))
	}
	return strings.Join(parts, ", ")
}

func clampPercent(pct decimal.Decimal) decimal.Decimal {
	if pct.IsNegative() {
		return decimal.Zero
	}
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}
