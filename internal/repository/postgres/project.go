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

type projectRepository struct {
	BaseRepository
}

func NewProjectRepository(base BaseRepository) repository.ProjectRepository {
	return &projectRepository{base}
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	query := `
		INSERT INTO projects (
			client_id, service_id, title, description, image_key, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt

	err := r.db.GetContext(ctx, &project.ID, query,
		project.ClientID,
		project.ServiceID,
		project.Title,
		project.Description,
		project.ImageKey,
		project.Status,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

func (r *projectRepository) Get(ctx context.Context, id int64) (*model.Project, error) {
	query := `
		SELECT id, client_id, service_id, title, description, image_key, status,
		       created_at, updated_at
		FROM projects
		WHERE id = $1
	`
	var project model.Project
	if err := r.db.GetContext(ctx, &project, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("project")
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &project, nil
}

func (r *projectRepository) Update(ctx context.Context, project *model.Project) error {
	query := `
		UPDATE projects
		SET client_id = $1, service_id = $2, title = $3, description = $4,
		    image_key = $5, status = $6, updated_at = $7
		WHERE id = $8
	`
	project.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		project.ClientID,
		project.ServiceID,
		project.Title,
		project.Description,
		project.ImageKey,
		project.Status,
		project.UpdatedAt,
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("project")
	}
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("project")
	}
	return nil
}

func (r *projectRepository) List(ctx context.Context, status string) ([]*model.Project, error) {
	query := `
		SELECT id, client_id, service_id, title, description, image_key, status,
		       created_at, updated_at
		FROM projects
		WHERE (COALESCE($1, '') = '' OR status = $1)
		ORDER BY created_at DESC
	`
	var projects []*model.Project
	if err := r.db.SelectContext(ctx, &projects, query, status); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}
