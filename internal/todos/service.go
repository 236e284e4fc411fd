package todos

import (
	"context"
	"fmt"
	"time"

	"github.com/ranchhand-app/ranchhand/internal/shared"
)

type Service struct {
	repo     Repository
	activity *shared.ActivityRecorder
}

func NewService(repo Repository, activity *shared.ActivityRecorder) *Service {
	return &Service{repo: repo, activity: activity}
}

func (s *Service) Create(ctx context.Context, text string, actor shared.Actor) (*Todo, error) {
	id, err := s.repo.Create(ctx, Todo{
		Text:          text,
		CreatedBy:     actor.ID,
		CreatedByName: actor.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}

	s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     fmt.Sprintf("Added todo %q", text),
		EntityType: "todo",
		EntityID:   fmt.Sprint(id),
	})

	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Todo, error) {
	return s.repo.List(ctx)
}

// Toggle flips completion. Completing records who and when; un-completing
// clears the attribution so a reopened task carries no stale name.
func (s *Service) Toggle(ctx context.Context, id int64, actor shared.Actor) (*Todo, error) {
	todo, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if todo.IsCompleted {
		todo.IsCompleted = false
		todo.CompletedBy = nil
		todo.CompletedByName = nil
		todo.CompletedAt = nil
	} else {
		now := time.Now()
		todo.IsCompleted = true
		todo.CompletedBy = &actor.ID
		todo.CompletedByName = &actor.Name
		todo.CompletedAt = &now
	}

	if err := s.repo.SetCompletion(ctx, todo); err != nil {
		return nil, err
	}

	verb := "Reopened"
	if todo.IsCompleted {
		verb = "Completed"
	}
	s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     fmt.Sprintf("%s todo %q", verb, todo.Text),
		EntityType: "todo",
		EntityID:   fmt.Sprint(id),
	})

	return todo, nil
}

func (s *Service) Delete(ctx context.Context, id int64, actor shared.Actor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     "Deleted a todo",
		EntityType: "todo",
		EntityID:   fmt.Sprint(id),
	})
	return nil
}
