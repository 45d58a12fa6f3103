package repository

import (
	"context"

	"github.com/GanehsaConsulting/cms-admin-api/internal/model"
)

// All repository interfaces in one file
type (
	ServiceRepository interface {
		Create(ctx context.Context, svc *model.Service) error
		Get(ctx context.Context, id int64) (*model.Service, error)
		Update(ctx context.Context, svc *model.Service) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.Service, error)
	}

	// PackageRepository owns the transactional upsert flow: field update,
	// feature/requirement reconciliation and relation re-read happen in a
	// single transaction.
	PackageRepository interface {
		Create(ctx context.Context, in *model.PackageCreate) (*model.Package, error)
		Get(ctx context.Context, id int64) (*model.Package, error)
		List(ctx context.Context, serviceID int64) ([]*model.Package, error)
		Update(ctx context.Context, id int64, upd *model.PackageUpdate) (*model.Package, error)
		Delete(ctx context.Context, id int64) error
	}

	ClientRepository interface {
		Create(ctx context.Context, client *model.Client) error
		Get(ctx context.Context, id int64) (*model.Client, error)
		Update(ctx context.Context, client *model.Client) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.Client, error)
	}

	ProjectRepository interface {
		Create(ctx context.Context, project *model.Project) error
		Get(ctx context.Context, id int64) (*model.Project, error)
		Update(ctx context.Context, project *model.Project) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context, status string) ([]*model.Project, error)
	}

	ArticleRepository interface {
		Create(ctx context.Context, article *model.Article) error
		Get(ctx context.Context, id int64) (*model.Article, error)
		Update(ctx context.Context, article *model.Article) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context, status string) ([]*model.Article, error)
	}

	ActivityRepository interface {
		Create(ctx context.Context, activity *model.Activity) error
		Get(ctx context.Context, id int64) (*model.Activity, error)
		Update(ctx context.Context, activity *model.Activity) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.Activity, error)
	}

	MediaRepository interface {
		Create(ctx context.Context, media *model.Media) error
		Get(ctx context.Context, id int64) (*model.Media, error)
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.Media, error)
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id int64) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		Delete(ctx context.Context, id int64) error
		List(ctx context.Context) ([]*model.User, error)
	}
)
