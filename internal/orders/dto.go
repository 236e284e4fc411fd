package orders

import "github.com/shopspring/decimal"

type LineItemRequest struct {
	CatalogID int64           `json:"catalog_id" validate:"required,gt=0"`
	Name      string          `json:"name" validate:"required,max=200"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity" validate:"required,gte=1"`
}

type CreateOrderRequest struct {
	CustomerName string            `json:"customer_name" validate:"required,max=200"`
	ContactInfo  string            `json:"contact_info" validate:"max=200"`
	Items        []LineItemRequest `json:"items" validate:"dive"`
	Discount     decimal.Decimal   `json:"discount"`
	Description  string            `json:"description" validate:"max=2000"`
	Notes        string            `json:"notes" validate:"max=2000"`
	AssignedTo   *int64            `json:"assigned_to,omitempty"`
}

type UpdateOrderRequest struct {
	CustomerName *string            `json:"customer_name,omitempty" validate:"omitempty,max=200"`
	ContactInfo  *string            `json:"contact_info,omitempty" validate:"omitempty,max=200"`
	Items        *[]LineItemRequest `json:"items,omitempty" validate:"omitempty,dive"`
	Discount     *decimal.Decimal   `json:"discount,omitempty"`
	Description  *string            `json:"description,omitempty" validate:"omitempty,max=2000"`
	Notes        *string            `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Status       *OrderStatus       `json:"status,omitempty"`
	// AssignedTo of zero clears the assignment.
	AssignedTo *int64 `json:"assigned_to,omitempty"`
}

type ListOrdersRequest struct {
	Status *OrderStatus
	Search string
	Limit  int
	Offset int
}
