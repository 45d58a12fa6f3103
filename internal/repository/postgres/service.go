package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/GanehsaConsulting/cms-admin-api/internal/model"
	"github.com/GanehsaConsulting/cms-admin-api/internal/repository"
	apperrors "github.com/GanehsaConsulting/cms-admin-api/pkg/errors"
)

type serviceRepository struct {
	BaseRepository
}

func NewServiceRepository(base BaseRepository) repository.ServiceRepository {
	return &serviceRepository{base}
}

func (r *serviceRepository) Create(ctx context.Context, svc *model.Service) error {
	query := `
		INSERT INTO services (name, slug, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	svc.CreatedAt = time.Now()
	svc.UpdatedAt = svc.CreatedAt

	err := r.db.GetContext(ctx, &svc.ID, query,
		svc.Name,
		svc.Slug,
		svc.Description,
		svc.CreatedAt,
		svc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *serviceRepository) Get(ctx context.Context, id int64) (*model.Service, error) {
	query := `
		SELECT id, name, slug, description, created_at, updated_at
		FROM services
		WHERE id = $1
	`
	var svc model.Service
	if err := r.db.GetContext(ctx, &svc, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("service")
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &svc, nil
}

func (r *serviceRepository) Update(ctx context.Context, svc *model.Service) error {
	query := `
		UPDATE services
		SET name = $1, slug = $2, description = $3, updated_at = $4
		WHERE id = $5
	`
	svc.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		svc.Name,
		svc.Slug,
		svc.Description,
		svc.UpdatedAt,
		svc.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("service")
	}
	return nil
}

func (r *serviceRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("service")
	}
	return nil
}

func (r *serviceRepository) List(ctx context.Context) ([]*model.Service, error) {
	query := `
		SELECT id, name, slug, description, created_at, updated_at
		FROM services
		ORDER BY name ASC
	`
	var services []*model.Service
	if err := r.db.SelectContext(ctx, &services, query); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}
