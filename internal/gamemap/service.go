package gamemap

import (
	"context"
	"errors"
	"fmt"

	"github.com/ranchhand-app/ranchhand/internal/rbac"
	"github.com/ranchhand-app/ranchhand/internal/shared"
)

var ErrOutOfBounds = errors.New("pin position outside the map")

type Service struct {
	repo     Repository
	activity *shared.ActivityRecorder
}

func NewService(repo Repository, activity *shared.ActivityRecorder) *Service {
	return &Service{repo: repo, activity: activity}
}

// Place creates a pin at the given percentage coordinates. Unknown
// categories fold into other; positions outside the map are rejected.
func (s *Service) Place(ctx context.Context, req PlacePinRequest, actor shared.Actor) (*Pin, error) {
	if req.X < 0 || req.X > 100 || req.Y < 0 || req.Y > 100 {
		return nil, fmt.Errorf("%w: (%.2f%%, %.2f%%)", ErrOutOfBounds, req.X, req.Y)
	}

	pin := Pin{
		X:             req.X,
		Y:             req.Y,
		Title:         req.Title,
		Description:   req.Description,
		Category:      NormalizeCategory(req.Category),
		CreatedBy:     actor.ID,
		CreatedByName: actor.Name,
	}
	id, err := s.repo.Create(ctx, pin)
	if err != nil {
		return nil, fmt.Errorf("place pin: %w", err)
	}

	s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     fmt.Sprintf("Placed map pin %q", req.Title),
		EntityType: "map_pin",
		EntityID:   fmt.Sprint(id),
	})

	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, category *PinCategory) ([]Pin, error) {
	return s.repo.List(ctx, category)
}

// Delete removes a pin. Only the pin's creator or a holder of the
// map.admin capability may delete it.
func (s *Service) Delete(ctx context.Context, id int64, actor shared.Actor) error {
	pin, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if pin.CreatedBy != actor.ID && !rbac.HasCapability(rbac.Role(actor.Role), "map.admin") {
		return shared.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     fmt.Sprintf("Removed map pin %q", pin.Title),
		EntityType: "map_pin",
		EntityID:   fmt.Sprint(id),
	})
	return nil
}
