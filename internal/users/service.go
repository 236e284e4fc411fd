package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ranchhand-app/ranchhand/internal/rbac"
	"github.com/ranchhand-app/ranchhand/internal/shared"
)

var ErrInvalidRole = errors.New("invalid role")

type CreateUserRequest struct {
	Username string    `json:"username" validate:"required,min=3,max=60"`
	Name     string    `json:"name" validate:"required,max=120"`
	Password string    `json:"password" validate:"required,min=8"`
	Role     rbac.Role `json:"role" validate:"required"`
}

type UpdateUserRequest struct {
	Name     *string    `json:"name,omitempty" validate:"omitempty,max=120"`
	Role     *rbac.Role `json:"role,omitempty"`
	IsActive *bool      `json:"is_active,omitempty"`
	Password *string    `json:"password,omitempty" validate:"omitempty,min=8"`
}

type Service struct {
	repo     Repository
	activity *shared.ActivityRecorder
}

func NewService(repo Repository, activity *shared.ActivityRecorder) *Service {
	return &Service{repo: repo, activity: activity}
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, req CreateUserRequest, actor shared.Actor) (*User, error) {
	if !ValidRole(req.Role) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, req.Role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.repo.Create(ctx, User{
		Username:     strings.TrimSpace(strings.ToLower(req.Username)),
		Name:         strings.TrimSpace(req.Name),
		Role:         req.Role,
		IsActive:     true,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     fmt.Sprintf("Added ranch member %s", req.Name),
		EntityType: "user",
		EntityID:   fmt.Sprint(id),
	})
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateUserRequest, actor shared.Actor) (*User, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		if !ValidRole(*req.Role) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidRole, *req.Role)
		}
		fields["role"] = *req.Role
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		fields["password_hash"] = string(hash)
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		Action:     fmt.Sprintf("Updated ranch member %s", user.Name),
		EntityType: "user",
		EntityID:   fmt.Sprint(id),
	})
	return user, nil
}
