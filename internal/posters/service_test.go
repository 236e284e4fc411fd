package posters

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ranchhand-app/ranchhand/internal/shared"
)

type memoryRepo struct {
	posters map[int64]*Poster
	nextID  int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{posters: make(map[int64]*Poster), nextID: 1}
}

func (r *memoryRepo) Create(ctx context.Context, poster Poster) (int64, error) {
	id := r.nextID
	r.nextID++
	poster.ID = id
	poster.CreatedAt = time.Now()
	r.posters[id] = &poster
	return id, nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (*Poster, error) {
	poster, ok := r.posters[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *poster
	return &clone, nil
}

func (r *memoryRepo) List(ctx context.Context) ([]Poster, error) {
	var out []Poster
	for _, poster := range r.posters {
		out = append(out, *poster)
	}
	return out, nil
}

func (r *memoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.posters[id]; !ok {
		return ErrNotFound
	}
	delete(r.posters, id)
	return nil
}

type memoryStorage struct {
	blobs   map[string][]byte
	deleted []string
	nextRef int
	failOn  string
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{blobs: make(map[string][]byte)}
}

func (s *memoryStorage) Upload(ctx context.Context, name, mimeType string, data []byte) (string, string, error) {
	if s.failOn != "" && bytes.Contains([]byte(name), []byte(s.failOn)) {
		return "", "", fmt.Errorf("storage unavailable")
	}
	s.nextRef++
	ref := fmt.Sprintf("blob-%d", s.nextRef)
	s.blobs[ref] = data
	return ref, "https://blobs.example/" + ref, nil
}

func (s *memoryStorage) Delete(ctx context.Context, ref string) error {
	s.deleted = append(s.deleted, ref)
	delete(s.blobs, ref)
	return nil
}

func testImage(t *testing.T, width, height int) []byte {
	t.Helper()
	img := imaging.New(width, height, color.White)
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func newTestService(repo Repository, storage Storage) *Service {
	return NewService(repo, storage, shared.NewActivityRecorder(nil, nil), slog.Default())
}

func TestMakeThumbnailBoundsLongEdge(t *testing.T) {
	data := testImage(t, 1600, 900)

	thumb, err := MakeThumbnail(data)
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), thumbnailMaxEdge)
	assert.LessOrEqual(t, img.Bounds().Dy(), thumbnailMaxEdge)
}

func TestMakeThumbnailKeepsSmallImages(t *testing.T) {
	data := testImage(t, 200, 120)

	thumb, err := MakeThumbnail(data)
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 120, img.Bounds().Dy())
}

func TestMakeThumbnailRejectsGarbage(t *testing.T) {
	_, err := MakeThumbnail([]byte("not an image"))
	assert.Error(t, err)
}

func TestUploadStoresImageAndThumbnail(t *testing.T) {
	repo := newMemoryRepo()
	storage := newMemoryStorage()
	svc := newTestService(repo, storage)

	poster, err := svc.Upload(context.Background(), "Barn dance", "image/png",
		testImage(t, 800, 600), shared.Actor{ID: 3, Name: "Sadie"})
	require.NoError(t, err)

	assert.Len(t, storage.blobs, 2)
	assert.NotEmpty(t, poster.URL)
	assert.NotEmpty(t, poster.ThumbURL)
	assert.Equal(t, "Sadie", poster.CreatedByName)
}

func TestUploadCleansUpWhenThumbnailStoreFails(t *testing.T) {
	repo := newMemoryRepo()
	storage := newMemoryStorage()
	storage.failOn = "-thumb"
	svc := newTestService(repo, storage)

	_, err := svc.Upload(context.Background(), "Barn dance", "image/png",
		testImage(t, 800, 600), shared.Actor{ID: 3, Name: "Sadie"})
	require.Error(t, err)

	assert.Empty(t, storage.blobs, "the full image blob is removed on failure")
	assert.Empty(t, repo.posters)
}

func TestDeleteOwnershipAndBlobCleanup(t *testing.T) {
	repo := newMemoryRepo()
	storage := newMemoryStorage()
	svc := newTestService(repo, storage)
	owner := shared.Actor{ID: 3, Name: "Sadie", Role: "hand"}

	poster, err := svc.Upload(context.Background(), "Barn dance", "image/png",
		testImage(t, 400, 300), owner)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), poster.ID, shared.Actor{ID: 9, Name: "Bill", Role: "hand"})
	assert.ErrorIs(t, err, shared.ErrForbidden)

	require.NoError(t, svc.Delete(context.Background(), poster.ID, owner))
	assert.Empty(t, repo.posters)
	assert.Len(t, storage.deleted, 2)
}
