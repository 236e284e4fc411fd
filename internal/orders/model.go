package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusOutstanding OrderStatus = "outstanding"
	StatusPreparing   OrderStatus = "preparing"
	StatusReady       OrderStatus = "ready"
	StatusDelivered   OrderStatus = "delivered"
)

// ValidStatus reports whether s is one of the known order statuses.
// Transitions between valid statuses are free-form.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusOutstanding, StatusPreparing, StatusReady, StatusDelivered:
		return true
	}
	return false
}

// LineItem is a priced, quantified reference to a catalog entry. Name and
// unit price are snapshots taken when the item was added; later catalog
// price changes never reprice existing orders or quotes.
type LineItem struct {
	CatalogID int64           `json:"catalog_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// ChecklistEntry is the per-line-item completion record. One entry per
// index position of the owning order's item list.
type ChecklistEntry struct {
	Checked       bool       `json:"checked"`
	CheckedBy     *int64     `json:"checked_by,omitempty"`
	CheckedByName *string    `json:"checked_by_name,omitempty"`
	CheckedAt     *time.Time `json:"checked_at,omitempty"`
}

type Order struct {
	ID             int64            `json:"id"`
	CustomerName   string           `json:"customer_name"`
	ContactInfo    string           `json:"contact_info"`
	Items          []LineItem       `json:"items"`
	Subtotal       decimal.Decimal  `json:"subtotal"`
	Discount       decimal.Decimal  `json:"discount"`
	Price          decimal.Decimal  `json:"price"`
	Description    string           `json:"description"`
	Status         OrderStatus      `json:"status"`
	AssignedTo     *int64           `json:"assigned_to,omitempty"`
	AssignedToName *string          `json:"assigned_to_name,omitempty"`
	Notes          string           `json:"notes"`
	Checklist      []ChecklistEntry `json:"checklist"`
	CreatedBy      int64            `json:"created_by"`
	CreatedByName  string           `json:"created_by_name"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// Stats aggregates order figures for the dashboard.
type Stats struct {
	TotalOutstanding  decimal.Decimal `json:"total_outstanding"`
	CompletedToday    int             `json:"completed_today"`
	PendingDeliveries int             `json:"pending_deliveries"`
}
