package activity

import (
	"context"
	"strings"

	"github.com/GanehsaConsulting/cms-admin-api/internal/model"
	"github.com/GanehsaConsulting/cms-admin-api/internal/repository"
	apperrors "github.com/GanehsaConsulting/cms-admin-api/pkg/errors"
)

type ActivityServicer interface {
	CreateActivity(ctx context.Context, activity *model.Activity) error
	GetActivity(ctx context.Context, id int64) (*model.Activity, error)
	ListActivities(ctx context.Context) ([]*model.Activity, error)
	UpdateActivity(ctx context.Context, activity *model.Activity) error
	DeleteActivity(ctx context.Context, id int64) error
}

type Service struct {
	repo repository.ActivityRepository
}

func NewService(repo repository.ActivityRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateActivity(ctx context.Context, activity *model.Activity) error {
	if fields := validate(activity); len(fields) > 0 {
		return apperrors.Validation(fields)
	}
	if err := s.repo.Create(ctx, activity); err != nil {
		return apperrors.FromPG(err, "activity")
	}
	return nil
}

func (s *Service) GetActivity(ctx context.Context, id int64) (*model.Activity, error) {
	activity, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.FromPG(err, "activity")
	}
	return activity, nil
}

func (s *Service) ListActivities(ctx context.Context) ([]*model.Activity, error) {
	activities, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.FromPG(err, "activity")
	}
	return activities, nil
}

func (s *Service) UpdateActivity(ctx context.Context, activity *model.Activity) error {
	if fields := validate(activity); len(fields) > 0 {
		return apperrors.Validation(fields)
	}
	if err := s.repo.Update(ctx, activity); err != nil {
		return apperrors.FromPG(err, "activity")
	}
	return nil
}

func (s *Service) DeleteActivity(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.FromPG(err, "activity")
	}
	return nil
}

func validate(activity *model.Activity) []apperrors.FieldError {
	var fields []apperrors.FieldError
	activity.Title = strings.TrimSpace(activity.Title)
	if activity.Title == "" {
		fields = append(fields, apperrors.FieldError{Field: "title", Message: "must not be empty"})
	}
	return fields
}
