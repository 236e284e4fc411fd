package posters

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ranchhand-app/ranchhand/internal/rbac"
	"github.com/ranchhand-app/ranchhand/internal/shared"
)

type Service struct {
	repo     Repository
	storage  Storage
	activity *shared.ActivityRecorder
	logger   *slog.Logger
}

func NewService(repo Repository, storage Storage, activity *shared.ActivityRecorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, storage: storage, activity: activity, logger: logger}
}

// Upload stores the full image and a generated thumbnail, then records
// the poster row pointing at both blobs.
func (s *Service) Upload(ctx context.Context, title, mimeType string, data []byte, actor shared.Actor) (*Poster, error) {
	thumb, err := MakeThumbnail(data)
	if err != nil {
		return nil, err
	}

	key := uuid.NewString()
	ref, url, err := s.storage.Upload(ctx, key, mimeType, data)
	if err != nil {
		return nil, fmt.Errorf("store poster: %w", err)
	}
	thumbRef, thumbURL, err := s.storage.Upload(ctx, key+"-thumb", "image/jpeg", thumb)
	if err != nil {
		// Orphan the full image rather than fail the cleanup too.
		if delErr := s.storage.Delete(ctx, ref); delErr != nil {
			s.logger.Warn("cleanup poster blob", slog.Any("error", delErr), slog.String("ref", ref))
		}
		return nil, fmt.Errorf("store thumbnail: %w", err)
	}

	id, err := s.repo.Create(ctx, Poster{
		Title:         title,
		URL:           url,
		ThumbURL:      thumbURL,
		Ref:           ref,
		ThumbRef:      thumbRef,
		CreatedBy:     actor.ID,
		CreatedByName: actor.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("create poster: %w", err)
	}

	s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     fmt.Sprintf("Uploaded poster %q", title),
		EntityType: "poster",
		EntityID:   fmt.Sprint(id),
	})

	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Poster, error) {
	return s.repo.List(ctx)
}

// Delete removes the poster row and best-effort deletes its blobs. Only
// the uploader or a holder of posters.admin may delete.
func (s *Service) Delete(ctx context.Context, id int64, actor shared.Actor) error {
	poster, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if poster.CreatedBy != actor.ID && !rbac.HasCapability(rbac.Role(actor.Role), "posters.admin") {
		return shared.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Blob deletion failures leave orphans in storage, never a broken row.
	for _, ref := range []string{poster.Ref, poster.ThumbRef} {
		if ref == "" {
			continue
		}
		if err := s.storage.Delete(ctx, ref); err != nil {
			s.logger.Warn("delete poster blob", slog.Any("error", err), slog.String("ref", ref))
		}
	}

	s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     fmt.Sprintf("Removed poster %q", poster.Title),
		EntityType: "poster",
		EntityID:   fmt.Sprint(id),
	})
	return nil
}
