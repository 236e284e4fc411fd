package catalog

import "github.com/shopspring/decimal"

type ItemRequest struct {
	Name     string          `json:"name" validate:"required,max=200"`
	Price    decimal.Decimal `json:"price"`
	Category ItemCategory    `json:"category"`
}

type UpdateItemRequest struct {
	Name     *string          `json:"name,omitempty" validate:"omitempty,max=200"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Category *ItemCategory    `json:"category,omitempty"`
}
