package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ranchhand-app/ranchhand/internal/shared"
	"github.com/ranchhand-app/ranchhand/internal/users"
)

var (
	ErrInvalidStatus   = errors.New("invalid order status")
	ErrInvalidIndex    = errors.New("checklist index out of range")
	ErrUnknownAssignee = errors.New("unknown assignee")
)

// AssigneeDirectory resolves assignee ids to accounts so orders can
// denormalize the assignee's display name alongside the id.
type AssigneeDirectory interface {
	Get(ctx context.Context, id int64) (*users.User, error)
}

type Service struct {
	repo      Repository
	directory AssigneeDirectory
	activity  *shared.ActivityRecorder
	events    EventPublisher
}

func NewService(repo Repository, directory AssigneeDirectory, activity *shared.ActivityRecorder, events EventPublisher) *Service {
	return &Service{
		repo:      repo,
		directory: directory,
		activity:  activity,
		events:    events,
	}
}

// resolveAssignee looks up the display name for an assignee id. A nil
// or non-positive id clears the assignment.
func (s *Service) resolveAssignee(ctx context.Context, id *int64) (*int64, *string, error) {
	if id == nil || *id <= 0 {
		return nil, nil, nil
	}
	user, err := s.directory.Get(ctx, *id)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: %d", ErrUnknownAssignee, *id)
		}
		return nil, nil, fmt.Errorf("resolve assignee: %w", err)
	}
	return id, &user.Name, nil
}

func (s *Service) Create(ctx context.Context, req CreateOrderRequest, actor shared.Actor) (*Order, error) {
	items := BuildLineItems(req.Items)
	pricing := ComputeTotals(items, req.Discount)

	description := req.Description
	if description == "" {
		description = DescribeItems(items)
	}

	assignedTo, assignedToName, err := s.resolveAssignee(ctx, req.AssignedTo)
	if err != nil {
		return nil, err
	}

	order := Order{
		CustomerName:   req.CustomerName,
		ContactInfo:    req.ContactInfo,
		Items:          items,
		Subtotal:       pricing.Subtotal,
		Discount:       pricing.DiscountPercent,
		Price:          pricing.Total,
		Description:    description,
		Status:         StatusOutstanding,
		AssignedTo:     assignedTo,
		AssignedToName: assignedToName,
		Notes:          req.Notes,
		Checklist:      ReconcileChecklist(nil, len(items)),
		CreatedBy:      actor.ID,
		CreatedByName:  actor.Name,
	}

	id, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     fmt.Sprintf("Created order for %s", req.CustomerName),
		EntityType: "order",
		EntityID:   fmt.Sprint(id),
	})

	return s.Get(ctx, id)
}

// Get loads an order with its checklist reconciled to the current item
// count, so readers always observe one entry per line item.
func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Checklist = ReconcileChecklist(order.Checklist, len(order.Items))
	return order, nil
}

func (s *Service) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	list, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, 0, err
	}
	for i := range list {
		list[i].Checklist = ReconcileChecklist(list[i].Checklist, len(list[i].Items))
	}
	return list, total, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateOrderRequest, actor shared.Actor) (*Order, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	if req.Status != nil && !ValidStatus(*req.Status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, *req.Status)
	}

	updates := make(map[string]interface{})
	if req.CustomerName != nil {
		updates["customer_name"] = *req.CustomerName
	}
	if req.ContactInfo != nil {
		updates["contact_info"] = *req.ContactInfo
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.AssignedTo != nil {
		assignedTo, assignedToName, err := s.resolveAssignee(ctx, req.AssignedTo)
		if err != nil {
			return nil, err
		}
		updates["assigned_to"] = assignedTo
		updates["assigned_to_name"] = assignedToName
	}

	// Reprice when the item list or the discount changes.
	if req.Items != nil || req.Discount != nil {
		items := existing.Items
		if req.Items != nil {
			items = BuildLineItems(*req.Items)
			itemsJSON, err := marshalItems(items)
			if err != nil {
				return nil, err
			}
			updates["items"] = itemsJSON
		}
		discount := existing.Discount
		if req.Discount != nil {
			discount = *req.Discount
		}
		pricing := ComputeTotals(items, discount)
		updates["subtotal"] = pricing.Subtotal
		updates["discount"] = pricing.DiscountPercent
		updates["price"] = pricing.Total
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	label := ""
	if req.Status != nil {
		label = fmt.Sprintf(" to %s", *req.Status)
	}
	s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     fmt.Sprintf("Updated order%s", label),
		EntityType: "order",
		EntityID:   fmt.Sprint(id),
	})

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// Each traversal into delivered emits one event with a fresh
	// transition id; the worker deduplicates on it, so the fund deposit
	// is applied once per edge even if the task retries.
	if req.Status != nil && *req.Status == StatusDelivered && existing.Status != StatusDelivered {
		evt := DeliveredEvent{
			TransitionID: uuid.NewString(),
			OrderID:      updated.ID,
			CustomerName: updated.CustomerName,
			Price:        updated.Price,
			ActorID:      actor.ID,
			ActorName:    actor.Name,
		}
		if err := s.events.PublishDelivered(ctx, evt); err != nil {
			return nil, fmt.Errorf("publish delivered event: %w", err)
		}
	}

	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64, actor shared.Actor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     "Deleted an order",
		EntityType: "order",
		EntityID:   fmt.Sprint(id),
	})
	return nil
}

// ToggleChecklistItem flips the checklist entry for the line item at
// index, recording attribution on check and clearing it on uncheck.
func (s *Service) ToggleChecklistItem(ctx context.Context, id int64, index int, actor shared.Actor) (*Order, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	checklist := ReconcileChecklist(order.Checklist, len(order.Items))
	if index < 0 || index >= len(order.Items) {
		return nil, fmt.Errorf("%w: %d of %d items", ErrInvalidIndex, index, len(order.Items))
	}

	checklist = toggleEntry(checklist, index, actor.ID, actor.Name, time.Now())
	if err := s.repo.UpdateChecklist(ctx, id, checklist); err != nil {
		return nil, fmt.Errorf("update checklist: %w", err)
	}

	verb := "Unchecked"
	if checklist[index].Checked {
		verb = "Checked"
	}
	s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     fmt.Sprintf("%s item %dx %s on order for %s", verb, order.Items[index].Quantity, order.Items[index].Name, order.CustomerName),
		EntityType: "order",
		EntityID:   fmt.Sprint(id),
	})

	order.Checklist = checklist
	return order, nil
}

// Stats fans out the dashboard aggregates in parallel.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	startOfDay := time.Now().Truncate(24 * time.Hour)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sum, err := s.repo.SumPriceByStatus(ctx, StatusOutstanding)
		if err == nil {
			stats.TotalOutstanding = sum
		}
		return err
	})
	g.Go(func() error {
		count, err := s.repo.CountDeliveredSince(ctx, startOfDay)
		if err == nil {
			stats.CompletedToday = count
		}
		return err
	})
	g.Go(func() error {
		count, err := s.repo.CountByStatus(ctx, StatusReady)
		if err == nil {
			stats.PendingDeliveries = count
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}

// BuildLineItems normalizes request lines: quantities clamp to 1 and
// duplicate catalog references merge into a single line, keeping the
// first snapshot's name and price.
func BuildLineItems(reqs []LineItemRequest) []LineItem {
	var items LineItems
	for _, req := range reqs {
		qty := req.Quantity
		if qty < 1 {
			qty = 1
		}
		price := req.UnitPrice
		if price.IsNegative() {
			price = decimal.Zero
		}
		merged := false
		for i := range items {
			if items[i].CatalogID == req.CatalogID {
				items[i].Quantity += qty
				merged = true
				break
			}
		}
		if merged {
			continue
		}
		items = append(items, LineItem{
			CatalogID: req.CatalogID,
			Name:      req.Name,
			UnitPrice: price,
			Quantity:  qty,
		})
	}
	return items
}

func marshalItems(items []LineItem) ([]byte, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}
	return data, nil
}
