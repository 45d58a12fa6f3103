// Package article manages editorial content. Incoming HTML is run
// through a UGC sanitizer before it touches the database.
package article

import (
	"context"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/GanehsaConsulting/cms-admin-api/internal/model"
	"github.com/GanehsaConsulting/cms-admin-api/internal/repository"
	"github.com/GanehsaConsulting/cms-admin-api/internal/slug"
	apperrors "github.com/GanehsaConsulting/cms-admin-api/pkg/errors"
)

type ArticleServicer interface {
	CreateArticle(ctx context.Context, article *model.Article) error
	GetArticle(ctx context.Context, id int64) (*model.Article, error)
	ListArticles(ctx context.Context, status string) ([]*model.Article, error)
	UpdateArticle(ctx context.Context, article *model.Article) error
	DeleteArticle(ctx context.Context, id int64) error
}

type Service struct {
	repo      repository.ArticleRepository
	sanitizer *bluemonday.Policy
}

func NewService(repo repository.ArticleRepository) *Service {
	return &Service{
		repo:      repo,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

func (s *Service) CreateArticle(ctx context.Context, article *model.Article) error {
	if fields := s.prepare(article); len(fields) > 0 {
		return apperrors.Validation(fields)
	}

	if article.Status == model.ArticleStatusPublished && article.PublishedAt == nil {
		now := time.Now()
		article.PublishedAt = &now
	}

	if err := s.repo.Create(ctx, article); err != nil {
		return apperrors.FromPG(err, "article")
	}
	return nil
}

func (s *Service) GetArticle(ctx context.Context, id int64) (*model.Article, error) {
	article, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.FromPG(err, "article")
	}
	return article, nil
}

func (s *Service) ListArticles(ctx context.Context, status string) ([]*model.Article, error) {
	if status != "" && status != model.ArticleStatusDraft && status != model.ArticleStatusPublished {
		return nil, apperrors.Validation([]apperrors.FieldError{
			{Field: "status", Message: "must be draft or published"},
		})
	}

	articles, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, apperrors.FromPG(err, "article")
	}
	return articles, nil
}

func (s *Service) UpdateArticle(ctx context.Context, article *model.Article) error {
	if fields := s.prepare(article); len(fields) > 0 {
		return apperrors.Validation(fields)
	}

	// First transition to published stamps the timestamp; it is never
	// reset on later edits.
	if article.Status == model.ArticleStatusPublished && article.PublishedAt == nil {
		now := time.Now()
		article.PublishedAt = &now
	}

	if err := s.repo.Update(ctx, article); err != nil {
		return apperrors.FromPG(err, "article")
	}
	return nil
}

func (s *Service) DeleteArticle(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.FromPG(err, "article")
	}
	return nil
}

func (s *Service) prepare(article *model.Article) []apperrors.FieldError {
	var fields []apperrors.FieldError

	article.Title = strings.TrimSpace(article.Title)
	if article.Title == "" {
		fields = append(fields, apperrors.FieldError{Field: "title", Message: "must not be empty"})
	}
	if article.Status == "" {
		article.Status = model.ArticleStatusDraft
	}
	if article.Status != model.ArticleStatusDraft && article.Status != model.ArticleStatusPublished {
		fields = append(fields, apperrors.FieldError{Field: "status", Message: "must be draft or published"})
	}

	article.Content = s.sanitizer.Sanitize(article.Content)
	article.Excerpt = s.sanitizer.Sanitize(article.Excerpt)
	if article.Slug == "" {
		article.Slug = slug.Make(article.Title)
	}

	return fields
}
