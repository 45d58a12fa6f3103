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

type articleRepository struct {
	BaseRepository
}

func NewArticleRepository(base BaseRepository) repository.ArticleRepository {
	return &articleRepository{base}
}

const articleColumns = `
	id, author_id, title, slug, excerpt, content, cover_key, status,
	published_at, created_at, updated_at
`

func (r *articleRepository) Create(ctx context.Context, article *model.Article) error {
	query := `
		INSERT INTO articles (
			author_id, title, slug, excerpt, content, cover_key, status,
			published_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	article.CreatedAt = time.Now()
	article.UpdatedAt = article.CreatedAt

	err := r.db.GetContext(ctx, &article.ID, query,
		article.AuthorID,
		article.Title,
		article.Slug,
		article.Excerpt,
		article.Content,
		article.CoverKey,
		article.Status,
		article.PublishedAt,
		article.CreatedAt,
		article.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}
	return nil
}

func (r *articleRepository) Get(ctx context.Context, id int64) (*model.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`
	var article model.Article
	if err := r.db.GetContext(ctx, &article, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("article")
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return &article, nil
}

func (r *articleRepository) Update(ctx context.Context, article *model.Article) error {
	query := `
		UPDATE articles
		SET title = $1, slug = $2, excerpt = $3, content = $4, cover_key = $5,
		    status = $6, published_at = $7, updated_at = $8
		WHERE id = $9
	`
	article.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		article.Title,
		article.Slug,
		article.Excerpt,
		article.Content,
		article.CoverKey,
		article.Status,
		article.PublishedAt,
		article.UpdatedAt,
		article.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update article: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("article")
	}
	return nil
}

func (r *articleRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("article")
	}
	return nil
}

func (r *articleRepository) List(ctx context.Context, status string) ([]*model.Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles
		WHERE (COALESCE($1, '') = '' OR status = $1)
		ORDER BY created_at DESC
	`
	var articles []*model.Article
	if err := r.db.SelectContext(ctx, &articles, query, status); err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	return articles, nil
}
