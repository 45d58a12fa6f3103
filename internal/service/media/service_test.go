package media

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GanehsaConsulting/cms-admin-api/internal/model"
	apperrors "github.com/GanehsaConsulting/cms-admin-api/pkg/errors"
)

type fakeStore struct {
	objects   map[string][]byte
	uploadErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (f *fakeStore) Upload(_ context.Context, data []byte, filename, _ string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	key := "media/" + filename
	f.objects[key] = data
	return key, nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeStore) PresignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://cdn.example.com/" + key, nil
}

type fakeMediaRepo struct {
	items     map[int64]*model.Media
	nextID    int64
	createErr error
}

func newFakeMediaRepo() *fakeMediaRepo {
	return &fakeMediaRepo{items: map[int64]*model.Media{}}
}

func (f *fakeMediaRepo) Create(_ context.Context, m *model.Media) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	m.ID = f.nextID
	f.items[m.ID] = m
	return nil
}

func (f *fakeMediaRepo) Get(_ context.Context, id int64) (*model.Media, error) {
	m, ok := f.items[id]
	if !ok {
		return nil, apperrors.NotFound("media")
	}
	return m, nil
}

func (f *fakeMediaRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return apperrors.NotFound("media")
	}
	delete(f.items, id)
	return nil
}

func (f *fakeMediaRepo) List(_ context.Context) ([]*model.Media, error) {
	var out []*model.Media
	for _, m := range f.items {
		out = append(out, m)
	}
	return out, nil
}

func TestUploadFillsPresignedURL(t *testing.T) {
	svc := NewService(newFakeMediaRepo(), newFakeStore())

	m, err := svc.UploadMedia(context.Background(), &UploadInput{
		Filename:    "logo.png",
		ContentType: "image/png",
		Data:        []byte("png-bytes"),
		UploadedBy:  3,
	})

	require.NoError(t, err)
	assert.Equal(t, "media/logo.png", m.ObjectKey)
	assert.Equal(t, "https://cdn.example.com/media/logo.png", m.URL)
	assert.Equal(t, int64(9), m.Size)
}

func TestUploadCleansUpObjectOnRepoFailure(t *testing.T) {
	repo := newFakeMediaRepo()
	repo.createErr = errors.New("connection reset")
	store := newFakeStore()
	svc := NewService(repo, store)

	_, err := svc.UploadMedia(context.Background(), &UploadInput{
		Filename: "logo.png",
		Data:     []byte("png-bytes"),
	})

	require.Error(t, err)
	assert.Empty(t, store.objects)
}

func TestUploadRejectsEmptyFile(t *testing.T) {
	svc := NewService(newFakeMediaRepo(), newFakeStore())

	_, err := svc.UploadMedia(context.Background(), &UploadInput{Filename: "logo.png"})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
}

func TestDeleteRemovesObject(t *testing.T) {
	repo := newFakeMediaRepo()
	store := newFakeStore()
	svc := NewService(repo, store)

	m, err := svc.UploadMedia(context.Background(), &UploadInput{
		Filename: "logo.png",
		Data:     []byte("png-bytes"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMedia(context.Background(), m.ID))
	assert.Empty(t, store.objects)
	assert.Empty(t, repo.items)
}
