package rbac

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ranchhand-app/ranchhand/internal/shared"
)

// Service resolves the effective capability set of a user.
type Service struct {
	pool *pgxpool.Pool
}

// NewService constructs a Service.
func NewService(pool *pgxpool.Pool) *Service {
	return &Service{pool: pool}
}

// EffectiveCapabilities returns the capabilities granted to the user via
// their role. Deactivated users hold no capabilities.
func (s *Service) EffectiveCapabilities(ctx context.Context, userID int64) ([]string, error) {
	var (
		role     string
		isActive bool
	)
	err := s.pool.QueryRow(ctx, `SELECT role, is_active FROM users WHERE id = $1`, userID).Scan(&role, &isActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("rbac: load user role: %w", err)
	}
	if !isActive {
		return nil, nil
	}
	return CapabilitiesFor(Role(role)), nil
}
