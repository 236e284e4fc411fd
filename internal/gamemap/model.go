package gamemap

import "time"

type PinCategory string

const (
	CategoryHerb   PinCategory = "herb"
	CategoryMine   PinCategory = "mine"
	CategoryOre    PinCategory = "ore"
	CategoryMarket PinCategory = "market"
	CategoryRanch  PinCategory = "ranch"
	CategoryHouse  PinCategory = "house"
	CategoryOther  PinCategory = "other"
)

// NormalizeCategory maps unknown categories to other rather than
// rejecting them, so old pins survive category renames.
func NormalizeCategory(c PinCategory) PinCategory {
	switch c {
	case CategoryHerb, CategoryMine, CategoryOre, CategoryMarket, CategoryRanch, CategoryHouse, CategoryOther:
		return c
	}
	return CategoryOther
}

// Pin is a user-placed marker. X and Y are percentages of the reference
// map plane, valid in [0,100].
type Pin struct {
	ID            int64       `json:"id"`
	X             float64     `json:"x"`
	Y             float64     `json:"y"`
	Title         string      `json:"title"`
	Description   string      `json:"description,omitempty"`
	Category      PinCategory `json:"category"`
	CreatedBy     int64       `json:"created_by"`
	CreatedByName string      `json:"created_by_name"`
	CreatedAt     time.Time   `json:"created_at"`
}
