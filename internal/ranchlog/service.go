package ranchlog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/ranchhand-app/ranchhand/internal/shared"
)

var ErrInvalidCategory = errors.New("invalid log category")

type CreateEntryRequest struct {
	Description string           `json:"description" validate:"required,max=1000"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Category    LogCategory      `json:"category"`
}

type Service struct {
	repo     Repository
	activity *shared.ActivityRecorder
}

func NewService(repo Repository, activity *shared.ActivityRecorder) *Service {
	return &Service{repo: repo, activity: activity}
}

func (s *Service) Create(ctx context.Context, req CreateEntryRequest, actor shared.Actor) (int64, error) {
	category := req.Category
	if category == "" {
		category = CategoryMisc
	}
	if !ValidCategory(category) {
		return 0, fmt.Errorf("%w: %s", ErrInvalidCategory, category)
	}

	id, err := s.repo.Create(ctx, Entry{
		Description:   req.Description,
		Amount:        req.Amount,
		Category:      category,
		CreatedBy:     actor.ID,
		CreatedByName: actor.Name,
	})
	if err != nil {
		return 0, err
	}

	s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     fmt.Sprintf("Logged a %s entry", category),
		EntityType: "ranch_log",
		EntityID:   fmt.Sprint(id),
	})
	return id, nil
}

func (s *Service) List(ctx context.Context, category *LogCategory) ([]Entry, error) {
	if category != nil && !ValidCategory(*category) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCategory, *category)
	}
	return s.repo.List(ctx, category)
}

func (s *Service) Delete(ctx context.Context, id int64, actor shared.Actor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     "Deleted a log entry",
		EntityType: "ranch_log",
		EntityID:   fmt.Sprint(id),
	})
	return nil
}

// ExportCSV streams the log as CSV with a header row. Amounts render
// with two decimal places; entries without one leave the cell empty.
func (s *Service) ExportCSV(ctx context.Context, category *LogCategory, w io.Writer) error {
	entries, err := s.List(ctx, category)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "category", "description", "amount", "logged_by"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, entry := range entries {
		amount := ""
		if entry.Amount != nil {
			amount = entry.Amount.StringFixed(2)
		}
		record := []string{
			entry.CreatedAt.Format("2006-01-02 15:04"),
			string(entry.Category),
			entry.Description,
			amount,
			entry.CreatedByName,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
