package fund

import "github.com/shopspring/decimal"

type TransactionRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Description string          `json:"description" validate:"max=500"`
}

type AdjustRequest struct {
	NewBalance  decimal.Decimal `json:"new_balance" validate:"required"`
	Description string          `json:"description" validate:"max=500"`
}
