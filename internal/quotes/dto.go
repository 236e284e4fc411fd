package quotes

import (
	"github.com/shopspring/decimal"

	"github.com/ranchhand-app/ranchhand/internal/orders"
)

type CreateQuoteRequest struct {
	CustomerName   string                   `json:"customer_name" validate:"required,max=200"`
	ContactInfo    string                   `json:"contact_info" validate:"max=200"`
	RequestedItems string                   `json:"requested_items" validate:"max=2000"`
	Items          []orders.LineItemRequest `json:"items" validate:"dive"`
	Discount       decimal.Decimal          `json:"discount"`
	Notes          string                   `json:"notes" validate:"max=2000"`
}

type UpdateQuoteRequest struct {
	CustomerName   *string                   `json:"customer_name" validate:"omitempty,max=200"`
	ContactInfo    *string                   `json:"contact_info" validate:"omitempty,max=200"`
	RequestedItems *string                   `json:"requested_items" validate:"omitempty,max=2000"`
	Items          *[]orders.LineItemRequest `json:"items" validate:"omitempty,dive"`
	Discount       *decimal.Decimal          `json:"discount"`
	Status         *QuoteStatus              `json:"status"`
	Notes          *string                   `json:"notes" validate:"omitempty,max=2000"`
}

type ListQuotesRequest struct {
	Status *QuoteStatus
	Search string
	Limit  int
	Offset int
}
