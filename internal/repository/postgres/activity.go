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

type activityRepository struct {
	BaseRepository
}

func NewActivityRepository(base BaseRepository) repository.ActivityRepository {
	return &activityRepository{base}
}

func (r *activityRepository) Create(ctx context.Context, activity *model.Activity) error {
	query := `
		INSERT INTO activities (title, description, image_key, happened_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	activity.CreatedAt = time.Now()
	activity.UpdatedAt = activity.CreatedAt

	err := r.db.GetContext(ctx, &activity.ID, query,
		activity.Title,
		activity.Description,
		activity.ImageKey,
		activity.HappenedAt,
		activity.CreatedAt,
		activity.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

func (r *activityRepository) Get(ctx context.Context, id int64) (*model.Activity, error) {
	query := `
		SELECT id, title, description, image_key, happened_at, created_at, updated_at
		FROM activities
		WHERE id = $1
	`
	var activity model.Activity
	if err := r.db.GetContext(ctx, &activity, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("activity")
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return &activity, nil
}

func (r *activityRepository) Update(ctx context.Context, activity *model.Activity) error {
	query := `
		UPDATE activities
		SET title = $1, description = $2, image_key = $3, happened_at = $4, updated_at = $5
		WHERE id = $6
	`
	activity.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		activity.Title,
		activity.Description,
		activity.ImageKey,
		activity.HappenedAt,
		activity.UpdatedAt,
		activity.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("activity")
	}
	return nil
}

func (r *activityRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("activity")
	}
	return nil
}

func (r *activityRepository) List(ctx context.Context) ([]*model.Activity, error) {
	query := `
		SELECT id, title, description, image_key, happened_at, created_at, updated_at
		FROM activities
		ORDER BY happened_at DESC NULLS LAST, created_at DESC
	`
	var activities []*model.Activity
	if err := r.db.SelectContext(ctx, &activities, query); err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}
