package project

import (
	"context"
	"strings"

	"github.com/GanehsaConsulting/cms-admin-api/internal/model"
	"github.com/GanehsaConsulting/cms-admin-api/internal/repository"
	apperrors "github.com/GanehsaConsulting/cms-admin-api/pkg/errors"
)

type ProjectServicer interface {
	CreateProject(ctx context.Context, project *model.Project) error
	GetProject(ctx context.Context, id int64) (*model.Project, error)
	ListProjects(ctx context.Context, status string) ([]*model.Project, error)
	UpdateProject(ctx context.Context, project *model.Project) error
	DeleteProject(ctx context.Context, id int64) error
}

type Service struct {
	repo repository.ProjectRepository
}

func NewService(repo repository.ProjectRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateProject(ctx context.Context, project *model.Project) error {
	if fields := validate(project); len(fields) > 0 {
		return apperrors.Validation(fields)
	}
	if err := s.repo.Create(ctx, project); err != nil {
		return apperrors.FromPG(err, "project")
	}
	return nil
}

func (s *Service) GetProject(ctx context.Context, id int64) (*model.Project, error) {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.FromPG(err, "project")
	}
	return project, nil
}

func (s *Service) ListProjects(ctx context.Context, status string) ([]*model.Project, error) {
	if status != "" && !validStatus(status) {
		return nil, apperrors.Validation([]apperrors.FieldError{
			{Field: "status", Message: "must be ongoing, completed or archived"},
		})
	}

	projects, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, apperrors.FromPG(err, "project")
	}
	return projects, nil
}

func (s *Service) UpdateProject(ctx context.Context, project *model.Project) error {
	if fields := validate(project); len(fields) > 0 {
		return apperrors.Validation(fields)
	}
	if err := s.repo.Update(ctx, project); err != nil {
		return apperrors.FromPG(err, "project")
	}
	return nil
}

func (s *Service) DeleteProject(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.FromPG(err, "project")
	}
	return nil
}

func validate(project *model.Project) []apperrors.FieldError {
	var fields []apperrors.FieldError
	project.Title = strings.TrimSpace(project.Title)
	if project.Title == "" {
		fields = append(fields, apperrors.FieldError{Field: "title", Message: "must not be empty"})
	}
	if project.Status == "" {
		project.Status = model.ProjectStatusOngoing
	}
	if !validStatus(project.Status) {
		fields = append(fields, apperrors.FieldError{Field: "status", Message: "must be ongoing, completed or archived"})
	}
	return fields
}

func validStatus(status string) bool {
	switch status {
	case model.ProjectStatusOngoing, model.ProjectStatusCompleted, model.ProjectStatusArchived:
		return true
	}
	return false
}
