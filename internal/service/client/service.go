package client

import (
	"context"
	"strings"

	"github.com/GanehsaConsulting/cms-admin-api/internal/model"
	"github.com/GanehsaConsulting/cms-admin-api/internal/repository"
	apperrors "github.com/GanehsaConsulting/cms-admin-api/pkg/errors"
)

type ClientServicer interface {
	CreateClient(ctx context.Context, client *model.Client) error
	GetClient(ctx context.Context, id int64) (*model.Client, error)
	ListClients(ctx context.Context) ([]*model.Client, error)
	UpdateClient(ctx context.Context, client *model.Client) error
	DeleteClient(ctx context.Context, id int64) error
}

type Service struct {
	repo repository.ClientRepository
}

func NewService(repo repository.ClientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateClient(ctx context.Context, client *model.Client) error {
	if fields := validate(client); len(fields) > 0 {
		return apperrors.Validation(fields)
	}
	if err := s.repo.Create(ctx, client); err != nil {
		return apperrors.FromPG(err, "client")
	}
	return nil
}

func (s *Service) GetClient(ctx context.Context, id int64) (*model.Client, error) {
	client, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.FromPG(err, "client")
	}
	return client, nil
}

func (s *Service) ListClients(ctx context.Context) ([]*model.Client, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.FromPG(err, "client")
	}
	return clients, nil
}

func (s *Service) UpdateClient(ctx context.Context, client *model.Client) error {
	if fields := validate(client); len(fields) > 0 {
		return apperrors.Validation(fields)
	}
	if err := s.repo.Update(ctx, client); err != nil {
		return apperrors.FromPG(err, "client")
	}
	return nil
}

func (s *Service) DeleteClient(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.FromPG(err, "client")
	}
	return nil
}

func validate(client *model.Client) []apperrors.FieldError {
	var fields []apperrors.FieldError
	client.Name = strings.TrimSpace(client.Name)
	if client.Name == "" {
		fields = append(fields, apperrors.FieldError{Field: "name", Message: "must not be empty"})
	}
	return fields
}
