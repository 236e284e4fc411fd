package catalog

import "github.com/shopspring/decimal"

type seedItem struct {
	name  string
	price string
}

// defaultItems is the stock price list a fresh ranch starts from.
var defaultItems = []seedItem{
	{"American Ginseng", "0.30"},
	{"Animal Fat", "1.00"},
	{"Animal Feed", "0.75"},
	{"Barley", "0.25"},
	{"Bay Bolete", "0.30"},
	{"Bay Leaf", "0.30"},
	{"Beef", "0.75"},
	{"Bell Pepper", "0.25"},
	{"Bird Meat (Gamey)", "0.75"},
	{"Bird Meat (Plump)", "0.75"},
	{"Blueberry", "0.30"},
	{"Broccoli", "0.25"},
	{"Burdock Root", "0.30"},
	{"Butter", "0.50"},
	{"Cabbage", "0.25"},
	{"Carrot", "0.25"},
	{"Cheese", "0.50"},
	{"Chilli Pepper", "0.25"},
	{"Cinnamon", "0.25"},
	{"Coffee Bean", "0.25"},
	{"Corn", "0.25"},
	{"Cotton", "0.30"},
	{"Cotton (Raw)", "0.25"},
	{"Creek Plum", "0.30"},
	{"Creeping Thyme", "0.30"},
	{"Cream", "0.50"},
	{"Crows Garlic", "0.25"},
	{"Cucumber", "0.25"},
	{"Deluxe Fertilizer", "1.50"},
	{"Desert Sage", "0.30"},
	{"Dewberry", "0.30"},
	{"Eggs", "0.75"},
	{"Echinacea", "0.30"},
	{"Evergreen Huckleberry", "0.30"},
	{"Feather", "0.55"},
	{"Fertiliser", "0.50"},
	{"Flour", "0.25"},
	{"Ginseng (Alaskan)", "0.30"},
	{"Ginseng (American)", "0.30"},
	{"Glass Jar", "0.50"},
	{"Hay", "0.75"},
	{"Haycube", "1.25"},
	{"Hop", "0.25"},
	{"Lavender", "0.30"},
	{"Lasso", "8.00"},
	{"Lettuce", "0.25"},
	{"Mature Venison Meat", "0.40"},
	{"Manure", "0.55"},
	{"Milk", "0.75"},
	{"Mint", "0.30"},
	{"Mutton", "0.75"},
	{"Nitrite", "0.75"},
	{"Oat", "0.25"},
	{"Onion", "0.25"},
	{"Pork", "0.75"},
	{"Potato", "0.25"},
	{"Pumpkin", "0.25"},
	{"Raspberry", "0.30"},
	{"Rye", "0.25"},
	{"Sap", "0.20"},
	{"Saw Dust", "0.20"},
	{"Stick", "0.20"},
	{"Sugar", "0.25"},
	{"Sugar Cane", "0.25"},
	{"Sulfur", "0.75"},
	{"Sunflower", "0.25"},
	{"Tobacco", "0.25"},
	{"Tomato", "0.25"},
	{"Watermelon", "0.25"},
	{"Wintergreen Huckleberry", "0.30"},
	{"Wheat", "0.25"},
	{"Wood", "0.20"},
	{"Wool", "0.60"},
	{"Yarrow", "0.30"},
}

// DefaultItems returns the seed catalog as full items in the other
// category, ready for bulk insert.
func DefaultItems() []Item {
	out := make([]Item, 0, len(defaultItems))
	for _, seed := range defaultItems {
		out = append(out, Item{
			Name:     seed.name,
			Price:    decimal.RequireFromString(seed.price),
			Category: CategoryOther,
		})
	}
	return out
}
