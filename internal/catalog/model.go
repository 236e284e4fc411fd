package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type ItemCategory string

const (
	CategoryLivestock ItemCategory = "livestock"
	CategoryCrops     ItemCategory = "crops"
	CategoryGoods     ItemCategory = "goods"
	CategoryServices  ItemCategory = "services"
	CategoryOther     ItemCategory = "other"
)

func ValidCategory(c ItemCategory) bool {
	switch c {
	case CategoryLivestock, CategoryCrops, CategoryGoods, CategoryServices, CategoryOther:
		return true
	}
	return false
}

// Item is a sellable catalog entry. Orders and quotes snapshot the name
// and price at add time, so later edits never reprice existing lines.
type Item struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  ItemCategory    `json:"category"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
