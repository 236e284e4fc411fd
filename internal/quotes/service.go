package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ranchhand-app/ranchhand/internal/orders"
	"github.com/ranchhand-app/ranchhand/internal/shared"
)

var ErrInvalidStatus = errors.New("invalid quote status")

type Service struct {
	repo     Repository
	activity *shared.ActivityRecorder
}

func NewService(repo Repository, activity *shared.ActivityRecorder) *Service {
	return &Service{repo: repo, activity: activity}
}

func (s *Service) Create(ctx context.Context, req CreateQuoteRequest, actor shared.Actor) (*Quote, error) {
	items := orders.BuildLineItems(req.Items)
	pricing := orders.ComputeTotals(items, req.Discount)

	quote := Quote{
		CustomerName:   req.CustomerName,
		ContactInfo:    req.ContactInfo,
		RequestedItems: req.RequestedItems,
		Items:          items,
		Subtotal:       pricing.Subtotal,
		Discount:       pricing.DiscountPercent,
		EstimatedPrice: pricing.Total,
		Status:         StatusPending,
		Notes:          req.Notes,
		CreatedBy:      actor.ID,
		CreatedByName:  actor.Name,
	}

	id, err := s.repo.Create(ctx, quote)
	if err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}

	s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     fmt.Sprintf("Created quote for %s", req.CustomerName),
		EntityType: "quote",
		EntityID:   fmt.Sprint(id),
	})

	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Quote, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListQuotesRequest) ([]Quote, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateQuoteRequest, actor shared.Actor) (*Quote, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quote: %w", err)
	}

	if req.Status != nil && !ValidStatus(*req.Status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, *req.Status)
	}
	// Conversion is the only path that may accept a quote; status edits
	// on a converted quote would break the back-reference.
	if existing.ConvertedOrderID != nil && req.Status != nil {
		return nil, ErrAlreadyConverted
	}

	updates := make(map[string]interface{})
	if req.CustomerName != nil {
		updates["customer_name"] = *req.CustomerName
	}
	if req.ContactInfo != nil {
		updates["contact_info"] = *req.ContactInfo
	}
	if req.RequestedItems != nil {
		updates["requested_items"] = *req.RequestedItems
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if req.Items != nil || req.Discount != nil {
		items := existing.Items
		if req.Items != nil {
			items = orders.BuildLineItems(*req.Items)
			itemsJSON, err := json.Marshal(items)
			if err != nil {
				return nil, fmt.Errorf("marshal items: %w", err)
			}
			updates["items"] = itemsJSON
		}
		discount := existing.Discount
		if req.Discount != nil {
			discount = *req.Discount
		}
		pricing := orders.ComputeTotals(items, discount)
		updates["subtotal"] = pricing.Subtotal
		updates["discount"] = pricing.DiscountPercent
		updates["estimated_price"] = pricing.Total
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, fmt.Errorf("update quote: %w", err)
	}

	s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     fmt.Sprintf("Updated quote for %s", existing.CustomerName),
		EntityType: "quote",
		EntityID:   fmt.Sprint(id),
	})

	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64, actor shared.Actor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     "Deleted a quote",
		EntityType: "quote",
		EntityID:   fmt.Sprint(id),
	})
	return nil
}

// Convert turns a pending quote into an outstanding order. The priced
// lines, discount and estimated total carry over as the order's snapshot;
// the customer's requested items become the order description. The
// repository performs the create-and-accept as one transaction and
// refuses quotes that already converted.
func (s *Service) Convert(ctx context.Context, id int64, actor shared.Actor) (*Quote, error) {
	quote, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote.ConvertedOrderID != nil {
		return nil, ErrAlreadyConverted
	}

	description := quote.RequestedItems
	if description == "" {
		description = orders.DescribeItems(quote.Items)
	}

	order := orders.Order{
		CustomerName:  quote.CustomerName,
		ContactInfo:   quote.ContactInfo,
		Items:         quote.Items,
		Subtotal:      quote.Subtotal,
		Discount:      quote.Discount,
		Price:         quote.EstimatedPrice,
		Description:   description,
		Status:        orders.StatusOutstanding,
		Notes:         quote.Notes,
		Checklist:     orders.ReconcileChecklist(nil, len(quote.Items)),
		CreatedBy:     actor.ID,
		CreatedByName: actor.Name,
	}

	orderID, err := s.repo.Convert(ctx, id, order)
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     fmt.Sprintf("Converted quote for %s into order #%d", quote.CustomerName, orderID),
		EntityType: "quote",
		EntityID:   fmt.Sprint(id),
	})

	return s.repo.Get(ctx, id)
}
