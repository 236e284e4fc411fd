package recipes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ranchhand-app/ranchhand/internal/shared"
)

var ErrInvalidBook = errors.New("invalid recipe book")

type IngredientRequest struct {
	Name     string `json:"name" validate:"max=120"`
	Quantity string `json:"quantity" validate:"max=60"`
}

type CreateRecipeRequest struct {
	Book        Book                `json:"book" validate:"required"`
	Name        string              `json:"name" validate:"required,max=200"`
	Description string              `json:"description" validate:"max=1000"`
	Location    string              `json:"location" validate:"max=200"`
	Ingredients []IngredientRequest `json:"ingredients" validate:"dive"`
}

type UpdateRecipeRequest struct {
	Name        *string              `json:"name,omitempty" validate:"omitempty,max=200"`
	Description *string              `json:"description,omitempty" validate:"omitempty,max=1000"`
	Location    *string              `json:"location,omitempty" validate:"omitempty,max=200"`
	Ingredients *[]IngredientRequest `json:"ingredients,omitempty" validate:"omitempty,dive"`
}

type Service struct {
	repo     Repository
	activity *shared.ActivityRecorder
}

func NewService(repo Repository, activity *shared.ActivityRecorder) *Service {
	return &Service{repo: repo, activity: activity}
}

// buildIngredients drops lines whose name is blank, matching how the
// entry form submits a trailing empty row.
func buildIngredients(reqs []IngredientRequest) []Ingredient {
	out := make([]Ingredient, 0, len(reqs))
	for _, req := range reqs {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			continue
		}
		out = append(out, Ingredient{Name: name, Quantity: strings.TrimSpace(req.Quantity)})
	}
	return out
}

func (s *Service) Create(ctx context.Context, req CreateRecipeRequest, actor shared.Actor) (*Recipe, error) {
	if !ValidBook(req.Book) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBook, req.Book)
	}

	recipe := Recipe{
		Book:          req.Book,
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Location:      req.Location,
		Ingredients:   buildIngredients(req.Ingredients),
		CreatedBy:     actor.ID,
		CreatedByName: actor.Name,
	}
	id, err := s.repo.Create(ctx, recipe)
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     fmt.Sprintf("Added recipe %q", recipe.Name),
		EntityType: "recipe",
		EntityID:   fmt.Sprint(id),
	})
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Recipe, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, book Book, search string) ([]Recipe, error) {
	if book == "" {
		book = BookItem
	}
	if !ValidBook(book) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBook, book)
	}
	return s.repo.List(ctx, book, strings.TrimSpace(search))
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRecipeRequest, actor shared.Actor) (*Recipe, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.Ingredients != nil {
		fields["ingredients"] = buildIngredients(*req.Ingredients)
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	recipe, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     fmt.Sprintf("Updated recipe %q", recipe.Name),
		EntityType: "recipe",
		EntityID:   fmt.Sprint(id),
	})
	return recipe, nil
}

func (s *Service) Delete(ctx context.Context, id int64, actor shared.Actor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     "Deleted a recipe",
		EntityType: "recipe",
		EntityID:   fmt.Sprint(id),
	})
	return nil
}
