package activity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	lastLimit int
	entries   []Entry
}

func (r *memoryRepo) List(ctx context.Context, limit int) ([]Entry, error) {
	r.lastLimit = limit
	if limit > len(r.entries) {
		limit = len(r.entries)
	}
	return r.entries[:limit], nil
}

func TestListLimits(t *testing.T) {
	repo := &memoryRepo{entries: make([]Entry, 150)}
	svc := NewService(repo)

	_, err := svc.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 20, repo.lastLimit)

	_, err = svc.List(context.Background(), -5)
	require.NoError(t, err)
	assert.Equal(t, 20, repo.lastLimit)

	_, err = svc.List(context.Background(), 40)
	require.NoError(t, err)
	assert.Equal(t, 40, repo.lastLimit)

	entries, err := svc.List(context.Background(), 500)
	require.NoError(t, err)
	assert.Equal(t, 100, repo.lastLimit)
	assert.Len(t, entries, 100)
}
