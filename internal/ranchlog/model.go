package ranchlog

import (
	"time"

	"github.com/shopspring/decimal"
)

type LogCategory string

const (
	CategoryLivestock LogCategory = "livestock"
	CategoryCrops     LogCategory = "crops"
	CategoryFinance   LogCategory = "finance"
	CategoryDelivery  LogCategory = "delivery"
	CategoryMisc      LogCategory = "misc"
)

func ValidCategory(c LogCategory) bool {
	switch c {
	case CategoryLivestock, CategoryCrops, CategoryFinance, CategoryDelivery, CategoryMisc:
		return true
	}
	return false
}

// Entry is a free-form ranch log line. Amount is optional; finance
// entries typically carry one.
type Entry struct {
	ID            int64            `json:"id"`
	Description   string           `json:"description"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Category      LogCategory      `json:"category"`
	CreatedBy     int64            `json:"created_by"`
	CreatedByName string           `json:"created_by_name"`
	CreatedAt     time.Time        `json:"created_at"`
}
