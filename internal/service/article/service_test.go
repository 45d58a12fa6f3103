package article

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GanehsaConsulting/cms-admin-api/internal/model"
	apperrors "github.com/GanehsaConsulting/cms-admin-api/pkg/errors"
)

type fakeArticleRepo struct {
	articles map[int64]*model.Article
	nextID   int64
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{articles: map[int64]*model.Article{}}
}

func (f *fakeArticleRepo) Create(_ context.Context, a *model.Article) error {
	f.nextID++
	a.ID = f.nextID
	f.articles[a.ID] = a
	return nil
}

func (f *fakeArticleRepo) Get(_ context.Context, id int64) (*model.Article, error) {
	a, ok := f.articles[id]
	if !ok {
		return nil, apperrors.NotFound("article")
	}
	return a, nil
}

func (f *fakeArticleRepo) Update(_ context.Context, a *model.Article) error {
	if _, ok := f.articles[a.ID]; !ok {
		return apperrors.NotFound("article")
	}
	f.articles[a.ID] = a
	return nil
}

func (f *fakeArticleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.articles[id]; !ok {
		return apperrors.NotFound("article")
	}
	delete(f.articles, id)
	return nil
}

func (f *fakeArticleRepo) List(_ context.Context, status string) ([]*model.Article, error) {
	var out []*model.Article
	for _, a := range f.articles {
		if status == "" || a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

func TestCreateStripsScriptTags(t *testing.T) {
	svc := NewService(newFakeArticleRepo())

	a := &model.Article{
		Title:   "Launch notes",
		Content: `<p>Hello</p><script>alert("x")</script>`,
	}
	require.NoError(t, svc.CreateArticle(context.Background(), a))

	assert.Equal(t, "<p>Hello</p>", a.Content)
}

func TestCreateDefaultsToDraft(t *testing.T) {
	svc := NewService(newFakeArticleRepo())

	a := &model.Article{Title: "Launch notes"}
	require.NoError(t, svc.CreateArticle(context.Background(), a))

	assert.Equal(t, model.ArticleStatusDraft, a.Status)
	assert.Nil(t, a.PublishedAt)
	assert.Equal(t, "launch-notes", a.Slug)
}

func TestPublishStampsTimestampOnce(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := NewService(repo)

	a := &model.Article{Title: "Launch notes"}
	require.NoError(t, svc.CreateArticle(context.Background(), a))

	a.Status = model.ArticleStatusPublished
	require.NoError(t, svc.UpdateArticle(context.Background(), a))
	require.NotNil(t, a.PublishedAt)
	first := *a.PublishedAt

	a.Title = "Launch notes, revised"
	require.NoError(t, svc.UpdateArticle(context.Background(), a))
	assert.Equal(t, first, *a.PublishedAt)
}

func TestListRejectsUnknownStatus(t *testing.T) {
	svc := NewService(newFakeArticleRepo())

	_, err := svc.ListArticles(context.Background(), "pending")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
}
