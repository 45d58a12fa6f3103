package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GanehsaConsulting/cms-admin-api/internal/model"
	apperrors "github.com/GanehsaConsulting/cms-admin-api/pkg/errors"
)

type fakeServiceRepo struct {
	services  []*model.Service
	listCalls int
}

func (f *fakeServiceRepo) Create(_ context.Context, svc *model.Service) error {
	svc.ID = int64(len(f.services) + 1)
	f.services = append(f.services, svc)
	return nil
}

func (f *fakeServiceRepo) Get(_ context.Context, id int64) (*model.Service, error) {
	for _, svc := range f.services {
		if svc.ID == id {
			return svc, nil
		}
	}
	return nil, apperrors.NotFound("service")
}

func (f *fakeServiceRepo) Update(_ context.Context, svc *model.Service) error {
	for i, existing := range f.services {
		if existing.ID == svc.ID {
			f.services[i] = svc
			return nil
		}
	}
	return apperrors.NotFound("service")
}

func (f *fakeServiceRepo) Delete(_ context.Context, id int64) error {
	for i, svc := range f.services {
		if svc.ID == id {
			f.services = append(f.services[:i], f.services[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("service")
}

func (f *fakeServiceRepo) List(_ context.Context) ([]*model.Service, error) {
	f.listCalls++
	return f.services, nil
}

func TestCreateGeneratesSlug(t *testing.T) {
	repo := &fakeServiceRepo{}
	svc := NewService(repo)

	s := &model.Service{Name: "Website Development"}
	require.NoError(t, svc.CreateService(context.Background(), s))
	assert.Equal(t, "website-development", s.Slug)
}

func TestCreateKeepsExplicitSlug(t *testing.T) {
	repo := &fakeServiceRepo{}
	svc := NewService(repo)

	s := &model.Service{Name: "Website Development", Slug: "webdev"}
	require.NoError(t, svc.CreateService(context.Background(), s))
	assert.Equal(t, "webdev", s.Slug)
}

func TestCreateRejectsEmptyName(t *testing.T) {
	svc := NewService(&fakeServiceRepo{})

	err := svc.CreateService(context.Background(), &model.Service{Name: "   "})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
}

func TestListMemoized(t *testing.T) {
	repo := &fakeServiceRepo{}
	svc := NewService(repo)
	require.NoError(t, svc.CreateService(context.Background(), &model.Service{Name: "SEO"}))

	_, err := svc.ListServices(context.Background())
	require.NoError(t, err)
	_, err = svc.ListServices(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, repo.listCalls)
}

func TestWriteInvalidatesListMemo(t *testing.T) {
	repo := &fakeServiceRepo{}
	svc := NewService(repo)

	_, err := svc.ListServices(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.CreateService(context.Background(), &model.Service{Name: "SEO"}))

	services, err := svc.ListServices(context.Background())
	require.NoError(t, err)
	assert.Len(t, services, 1)
	assert.Equal(t, 2, repo.listCalls)
}
