package recipes

import "time"

// Book separates the two recipe collections: item recipes and crafting
// recipes. They share the schema and differ only in which page lists them.
type Book string

const (
	BookItem     Book = "item"
	BookCrafting Book = "crafting"
)

func ValidBook(b Book) bool {
	return b == BookItem || b == BookCrafting
}

// Ingredient is one requirement line of a recipe. Quantity is free text
// ("2", "a handful") rather than a number.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
}

type Recipe struct {
	ID            int64        `json:"id"`
	Book          Book         `json:"book"`
	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	Location      string       `json:"location,omitempty"`
	Ingredients   []Ingredient `json:"ingredients"`
	CreatedBy     int64        `json:"created_by"`
	CreatedByName string       `json:"created_by_name"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
