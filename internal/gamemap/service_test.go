package gamemap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ranchhand-app/ranchhand/internal/shared"
)

type memoryRepo struct {
	pins   map[int64]*Pin
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{pins: make(map[int64]*Pin), nextID: 1}
}

func (r *memoryRepo) Create(ctx context.Context, pin Pin) (int64, error) {
	id := r.nextID
	r.nextID++
	pin.ID = id
	pin.CreatedAt = time.Now()
	r.pins[id] = &pin
	return id, nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (*Pin, error) {
	pin, ok := r.pins[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *pin
	return &clone, nil
}

func (r *memoryRepo) List(ctx context.Context, category *PinCategory) ([]Pin, error) {
	var out []Pin
	for _, pin := range r.pins {
		if category != nil && pin.Category != *category {
			continue
		}
		out = append(out, *pin)
	}
	return out, nil
}

func (r *memoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.pins[id]; !ok {
		return ErrNotFound
	}
	delete(r.pins, id)
	return nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, shared.NewActivityRecorder(nil, nil))
}

func TestPlacePin(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	actor := shared.Actor{ID: 3, Name: "Sadie", Role: "hand"}

	pin, err := svc.Place(context.Background(), PlacePinRequest{
		X: 42.5, Y: 61.25, Title: "Yarrow patch", Category: "herb",
	}, actor)
	require.NoError(t, err)

	assert.Equal(t, CategoryHerb, pin.Category)
	assert.Equal(t, actor.ID, pin.CreatedBy)
	assert.Equal(t, "Sadie", pin.CreatedByName)
}

func TestPlacePinUnknownCategoryFoldsToOther(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	pin, err := svc.Place(context.Background(), PlacePinRequest{
		X: 10, Y: 10, Title: "Mystery spot", Category: "treasure",
	}, shared.Actor{ID: 1, Name: "Arthur"})
	require.NoError(t, err)
	assert.Equal(t, CategoryOther, pin.Category)
}

func TestPlacePinOutOfBounds(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	_, err := svc.Place(context.Background(), PlacePinRequest{
		X: 101, Y: 50, Title: "Off the map",
	}, shared.Actor{ID: 1})
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = svc.Place(context.Background(), PlacePinRequest{
		X: 50, Y: -0.5, Title: "Off the map",
	}, shared.Actor{ID: 1})
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestDeletePinOwnership(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	owner := shared.Actor{ID: 3, Name: "Sadie", Role: "hand"}

	pin, err := svc.Place(context.Background(), PlacePinRequest{
		X: 10, Y: 10, Title: "Camp", Category: "ranch",
	}, owner)
	require.NoError(t, err)

	// A different hand cannot delete someone else's pin.
	err = svc.Delete(context.Background(), pin.ID, shared.Actor{ID: 4, Name: "Bill", Role: "hand"})
	assert.ErrorIs(t, err, shared.ErrForbidden)

	// An admin can.
	err = svc.Delete(context.Background(), pin.ID, shared.Actor{ID: 1, Name: "Dutch", Role: "admin"})
	require.NoError(t, err)
	assert.Empty(t, repo.pins)
}

func TestDeleteOwnPin(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	owner := shared.Actor{ID: 3, Name: "Sadie", Role: "hand"}

	pin, err := svc.Place(context.Background(), PlacePinRequest{X: 5, Y: 5, Title: "Herbs"}, owner)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), pin.ID, owner))
	assert.Empty(t, repo.pins)
}

func TestListFilterByCategory(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	actor := shared.Actor{ID: 1, Name: "Arthur"}

	_, err := svc.Place(context.Background(), PlacePinRequest{X: 1, Y: 1, Title: "Mine", Category: "mine"}, actor)
	require.NoError(t, err)
	_, err = svc.Place(context.Background(), PlacePinRequest{X: 2, Y: 2, Title: "Shop", Category: "market"}, actor)
	require.NoError(t, err)

	mine := CategoryMine
	pins, err := svc.List(context.Background(), &mine)
	require.NoError(t, err)
	require.Len(t, pins, 1)
	assert.Equal(t, "Mine", pins[0].Title)

	all, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
