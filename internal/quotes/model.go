package quotes

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ranchhand-app/ranchhand/internal/orders"
)

type QuoteStatus string

const (
	StatusPending  QuoteStatus = "pending"
	StatusAccepted QuoteStatus = "accepted"
	StatusRejected QuoteStatus = "rejected"
)

func ValidStatus(s QuoteStatus) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Quote is a priced estimate for a prospective order. RequestedItems is
// the customer's free-form ask; Items are the priced lines built against
// the catalog. Once converted, ConvertedOrderID back-references the order
// and the quote can never convert again.
type Quote struct {
	ID               int64             `json:"id"`
	CustomerName     string            `json:"customer_name"`
	ContactInfo      string            `json:"contact_info,omitempty"`
	RequestedItems   string            `json:"requested_items,omitempty"`
	Items            []orders.LineItem `json:"items"`
	Subtotal         decimal.Decimal   `json:"subtotal"`
	Discount         decimal.Decimal   `json:"discount"`
	EstimatedPrice   decimal.Decimal   `json:"estimated_price"`
	Status           QuoteStatus       `json:"status"`
	Notes            string            `json:"notes,omitempty"`
	ConvertedOrderID *int64            `json:"converted_order_id,omitempty"`
	CreatedBy        int64             `json:"created_by"`
	CreatedByName    string            `json:"created_by_name"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}
