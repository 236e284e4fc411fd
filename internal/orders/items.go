package orders

import "github.com/shopspring/decimal"

// CatalogItem is the subset of a catalog entry the line-item editor
// snapshots when an item is added.
type CatalogItem struct {
	ID    int64
	Name  string
	Price decimal.Decimal
}

// LineItems maintains an order or quote's line-item list. At most one
// line exists per catalog entry.
type LineItems []LineItem

// AddFromCatalog adds one unit of the catalog item. When a line for the
// same catalog entry already exists its quantity is incremented instead
// of duplicating the line.
func (l LineItems) AddFromCatalog(item CatalogItem) LineItems {
	for i := range l {
		if l[i].CatalogID == item.ID {
			l[i].Quantity++
			return l
		}
	}
	return append(l, LineItem{
		CatalogID: item.ID,
		Name:      item.Name,
		UnitPrice: item.Price,
		Quantity:  1,
	})
}

// SetQuantity sets the line's quantity, clamping to a minimum of 1.
func (l LineItems) SetQuantity(catalogID int64, n int) LineItems {
	if n < 1 {
		n = 1
	}
	for i := range l {
		if l[i].CatalogID == catalogID {
			l[i].Quantity = n
			break
		}
	}
	return l
}

// AdjustQuantity changes the line's quantity by delta, clamping to a
// minimum of 1. Removal is explicit via Remove, never by decrement.
func (l LineItems) AdjustQuantity(catalogID int64, delta int) LineItems {
	for i := range l {
		if l[i].CatalogID == catalogID {
			q := l[i].Quantity + delta
			if q < 1 {
				q = 1
			}
			l[i].Quantity = q
			break
		}
	}
	return l
}

// Remove deletes the line for the catalog entry entirely.
func (l LineItems) Remove(catalogID int64) LineItems {
	out := l[:0]
	for _, item := range l {
		if item.CatalogID != catalogID {
			out = append(out, item)
		}
	}
	return out
}
