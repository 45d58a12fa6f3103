// Package catalog manages the service categories packages hang off of.
package catalog

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/GanehsaConsulting/cms-admin-api/internal/model"
	"github.com/GanehsaConsulting/cms-admin-api/internal/repository"
	"github.com/GanehsaConsulting/cms-admin-api/internal/slug"
	apperrors "github.com/GanehsaConsulting/cms-admin-api/pkg/errors"
)

type ServiceServicer interface {
	CreateService(ctx context.Context, svc *model.Service) error
	GetService(ctx context.Context, id int64) (*model.Service, error)
	ListServices(ctx context.Context) ([]*model.Service, error)
	UpdateService(ctx context.Context, svc *model.Service) error
	DeleteService(ctx context.Context, id int64) error
}

const listCacheKey = "services:list"

type Service struct {
	repo repository.ServiceRepository
	memo *gocache.Cache
}

func NewService(repo repository.ServiceRepository) *Service {
	return &Service{
		repo: repo,
		memo: gocache.New(30*time.Second, time.Minute),
	}
}

func (s *Service) CreateService(ctx context.Context, svc *model.Service) error {
	if fields := validate(svc); len(fields) > 0 {
		return apperrors.Validation(fields)
	}
	if svc.Slug == "" {
		svc.Slug = slug.Make(svc.Name)
	}

	if err := s.repo.Create(ctx, svc); err != nil {
		return apperrors.FromPG(err, "service")
	}
	s.memo.Delete(listCacheKey)
	return nil
}

func (s *Service) GetService(ctx context.Context, id int64) (*model.Service, error) {
	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.FromPG(err, "service")
	}
	return svc, nil
}

// ListServices memoizes in-process: the catalog is tiny and read on
// nearly every admin page load.
func (s *Service) ListServices(ctx context.Context) ([]*model.Service, error) {
	if cached, ok := s.memo.Get(listCacheKey); ok {
		return cached.([]*model.Service), nil
	}

	services, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.FromPG(err, "service")
	}
	s.memo.SetDefault(listCacheKey, services)
	return services, nil
}

func (s *Service) UpdateService(ctx context.Context, svc *model.Service) error {
	if fields := validate(svc); len(fields) > 0 {
		return apperrors.Validation(fields)
	}
	if svc.Slug == "" {
		svc.Slug = slug.Make(svc.Name)
	}

	if err := s.repo.Update(ctx, svc); err != nil {
		return apperrors.FromPG(err, "service")
	}
	s.memo.Delete(listCacheKey)
	return nil
}

func (s *Service) DeleteService(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.FromPG(err, "service")
	}
	s.memo.Delete(listCacheKey)
	return nil
}

func validate(svc *model.Service) []apperrors.FieldError {
	var fields []apperrors.FieldError
	svc.Name = strings.TrimSpace(svc.Name)
	if svc.Name == "" {
		fields = append(fields, apperrors.FieldError{Field: "name", Message: "must not be empty"})
	}
	svc.Slug = strings.TrimSpace(svc.Slug)
	return fields
}
