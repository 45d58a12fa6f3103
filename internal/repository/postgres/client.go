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

type clientRepository struct {
	BaseRepository
}

func NewClientRepository(base BaseRepository) repository.ClientRepository {
	return &clientRepository{base}
}

func (r *clientRepository) Create(ctx context.Context, client *model.Client) error {
	query := `
		INSERT INTO clients (name, industry, logo_key, website, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	client.CreatedAt = time.Now()
	client.UpdatedAt = client.CreatedAt

	err := r.db.GetContext(ctx, &client.ID, query,
		client.Name,
		client.Industry,
		client.LogoKey,
		client.Website,
		client.CreatedAt,
		client.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (r *clientRepository) Get(ctx context.Context, id int64) (*model.Client, error) {
	query := `
		SELECT id, name, industry, logo_key, website, created_at, updated_at
		FROM clients
		WHERE id = $1
	`
	var client model.Client
	if err := r.db.GetContext(ctx, &client, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("client")
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &client, nil
}

func (r *clientRepository) Update(ctx context.Context, client *model.Client) error {
	query := `
		UPDATE clients
		SET name = $1, industry = $2, logo_key = $3, website = $4, updated_at = $5
		WHERE id = $6
	`
	client.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		client.Name,
		client.Industry,
		client.LogoKey,
		client.Website,
		client.UpdatedAt,
		client.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("client")
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("client")
	}
	return nil
}

func (r *clientRepository) List(ctx context.Context) ([]*model.Client, error) {
	query := `
		SELECT id, name, industry, logo_key, website, created_at, updated_at
		FROM clients
		ORDER BY name ASC
	`
	var clients []*model.Client
	if err := r.db.SelectContext(ctx, &clients, query); err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}
