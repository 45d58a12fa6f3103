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

type mediaRepository struct {
	BaseRepository
}

func NewMediaRepository(base BaseRepository) repository.MediaRepository {
	return &mediaRepository{base}
}

func (r *mediaRepository) Create(ctx context.Context, media *model.Media) error {
	query := `
		INSERT INTO media (name, object_key, content_type, size, uploaded_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	media.CreatedAt = time.Now()
	media.UpdatedAt = media.CreatedAt

	err := r.db.GetContext(ctx, &media.ID, query,
		media.Name,
		media.ObjectKey,
		media.ContentType,
		media.Size,
		media.UploadedBy,
		media.CreatedAt,
		media.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create media: %w", err)
	}
	return nil
}

func (r *mediaRepository) Get(ctx context.Context, id int64) (*model.Media, error) {
	query := `
		SELECT id, name, object_key, content_type, size, uploaded_by, created_at, updated_at
		FROM media
		WHERE id = $1
	`
	var media model.Media
	if err := r.db.GetContext(ctx, &media, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("media")
		}
		return nil, fmt.Errorf("failed to get media: %w", err)
	}
	return &media, nil
}

func (r *mediaRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("media")
	}
	return nil
}

func (r *mediaRepository) List(ctx context.Context) ([]*model.Media, error) {
	query := `
		SELECT id, name, object_key, content_type, size, uploaded_by, created_at, updated_at
		FROM media
		ORDER BY created_at DESC
	`
	var media []*model.Media
	if err := r.db.SelectContext(ctx, &media, query); err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}
	return media, nil
}
