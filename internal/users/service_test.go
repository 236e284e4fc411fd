package users

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ranchhand-app/ranchhand/internal/rbac"
	"github.com/ranchhand-app/ranchhand/internal/shared"
)

type memoryRepo struct {
	users  map[int64]User
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: map[int64]User{}}
}

func (r *memoryRepo) Create(ctx context.Context, user User) (int64, error) {
	for _, existing := range r.users {
		if strings.EqualFold(existing.Username, user.Username) {
			return 0, ErrUsernameTaken
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	return user.ID, nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (*User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *memoryRepo) FindByUsername(ctx context.Context, username string) (*User, error) {
	for _, user := range r.users {
		if strings.EqualFold(user.Username, username) {
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepo) List(ctx context.Context) ([]User, error) {
	var out []User
	for _, user := range r.users {
		out = append(out, user)
	}
	return out, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	user, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	for col, val := range fields {
		switch col {
		case "name":
			user.Name = val.(string)
		case "role":
			user.Role = val.(rbac.Role)
		case "is_active":
			user.IsActive = val.(bool)
		case "password_hash":
			user.PasswordHash = val.(string)
		}
	}
	user.UpdatedAt = time.Now()
	r.users[id] = user
	return nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, shared.NewActivityRecorder(nil, nil))
}

var actor = shared.Actor{ID: 1, Name: "Dutch", Role: "admin"}

func TestCreateHashesPasswordAndLowercasesUsername(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)

	user, err := svc.Create(context.Background(), CreateUserRequest{
		Username: " Arthur ", Name: "Arthur Morgan", Password: "boadicea1899", Role: rbac.RoleForeman,
	}, actor)
	require.NoError(t, err)

	assert.Equal(t, "arthur", user.Username)
	assert.True(t, user.IsActive)
	stored := repo.users[user.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("boadicea1899")))
}

func TestCreateRejectsUnknownRole(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "micah", Name: "Micah Bell", Password: "ratratrat1", Role: "snake",
	}, actor)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestCreateRejectsDuplicateUsername(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "john", Name: "John Marston", Password: "password1", Role: rbac.RoleHand,
	}, actor)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateUserRequest{
		Username: "JOHN", Name: "Imposter", Password: "password2", Role: rbac.RoleHand,
	}, actor)
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestUpdateRoleAndDeactivate(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "sean", Name: "Sean MacGuire", Password: "password1", Role: rbac.RoleHand,
	}, actor)
	require.NoError(t, err)

	role := rbac.RoleGuest
	inactive := false
	updated, err := svc.Update(context.Background(), created.ID, UpdateUserRequest{
		Role: &role, IsActive: &inactive,
	}, actor)
	require.NoError(t, err)

	assert.Equal(t, rbac.RoleGuest, updated.Role)
	assert.False(t, updated.IsActive)
}

func TestUpdatePasswordRehashes(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "abigail", Name: "Abigail Roberts", Password: "oldpassword", Role: rbac.RoleHand,
	}, actor)
	require.NoError(t, err)
	oldHash := repo.users[created.ID].PasswordHash

	newPassword := "freshpassword"
	_, err = svc.Update(context.Background(), created.ID, UpdateUserRequest{Password: &newPassword}, actor)
	require.NoError(t, err)

	newHash := repo.users[created.ID].PasswordHash
	assert.NotEqual(t, oldHash, newHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("freshpassword")))
}
