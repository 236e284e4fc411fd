package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ranchhand-app/ranchhand/internal/shared"
)

var (
	ErrInvalidCategory = errors.New("invalid catalog category")
	ErrNotEmpty        = errors.New("catalog already has items")
)

type Service struct {
	repo     Repository
	activity *shared.ActivityRecorder
}

func NewService(repo Repository, activity *shared.ActivityRecorder) *Service {
	return &Service{repo: repo, activity: activity}
}

func (s *Service) Create(ctx context.Context, req ItemRequest, actor shared.Actor) (*Item, error) {
	category := req.Category
	if category == "" {
		category = CategoryOther
	}
	if !ValidCategory(category) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCategory, category)
	}

	price := req.Price
	if price.IsNegative() {
		price = decimal.Zero
	}

	id, err := s.repo.Create(ctx, Item{Name: req.Name, Price: price, Category: category})
	if err != nil {
		return nil, fmt.Errorf("create catalog item: %w", err)
	}

	s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     fmt.Sprintf("Added %s to the price catalog", req.Name),
		EntityType: "catalog_item",
		EntityID:   fmt.Sprint(id),
	})

	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Item, error) {
	return s.repo.Get(ctx, id)
}

// Search lists items filtered by a case-insensitive name substring and
// an optional category.
func (s *Service) Search(ctx context.Context, search string, category *ItemCategory) ([]Item, error) {
	if category != nil && !ValidCategory(*category) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCategory, *category)
	}
	return s.repo.List(ctx, search, category)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateItemRequest, actor shared.Actor) (*Item, error) {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Price != nil {
		price := *req.Price
		if price.IsNegative() {
			price = decimal.Zero
		}
		updates["price"] = price
	}
	if req.Category != nil {
		if !ValidCategory(*req.Category) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCategory, *req.Category)
		}
		updates["category"] = *req.Category
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, err
	}

	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     fmt.Sprintf("Updated catalog item %s", item.Name),
		EntityType: "catalog_item",
		EntityID:   fmt.Sprint(id),
	})
	return item, nil
}

func (s *Service) Delete(ctx context.Context, id int64, actor shared.Actor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     "Removed a catalog item",
		EntityType: "catalog_item",
		EntityID:   fmt.Sprint(id),
	})
	return nil
}

// ImportDefaults seeds the stock price list. It refuses to run on a
// non-empty catalog so a second import cannot duplicate items.
func (s *Service) ImportDefaults(ctx context.Context, actor shared.Actor) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, ErrNotEmpty
	}

	inserted, err := s.repo.CreateBatch(ctx, DefaultItems())
	if err != nil {
		return inserted, fmt.Errorf("import defaults: %w", err)
	}

	s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     fmt.Sprintf("Imported %d default price items", inserted),
		EntityType: "catalog_item",
		EntityID:   "seed",
	})
	return inserted, nil
}
