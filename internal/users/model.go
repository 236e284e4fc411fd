package users

import (
	"time"

	"github.com/ranchhand-app/ranchhand/internal/rbac"
)

// User is a ranch member account. PasswordHash never serializes.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Role         rbac.Role `json:"role"`
	IsActive     bool      `json:"is_active"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ValidRole(role rbac.Role) bool {
	switch role {
	case rbac.RoleAdmin, rbac.RoleForeman, rbac.RoleHand, rbac.RoleGuest:
		return true
	}
	return false
}
