// Package media manages the uploaded file library backed by object
// storage.
package media

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GanehsaConsulting/cms-admin-api/internal/model"
	"github.com/GanehsaConsulting/cms-admin-api/internal/repository"
	apperrors "github.com/GanehsaConsulting/cms-admin-api/pkg/errors"
	"github.com/GanehsaConsulting/cms-admin-api/pkg/storage"
)

type MediaServicer interface {
	UploadMedia(ctx context.Context, in *UploadInput) (*model.Media, error)
	GetMedia(ctx context.Context, id int64) (*model.Media, error)
	ListMedia(ctx context.Context) ([]*model.Media, error)
	DeleteMedia(ctx context.Context, id int64) error
}

// UploadInput carries one multipart file plus its metadata.
type UploadInput struct {
	Filename    string
	ContentType string
	Data        []byte
	UploadedBy  int64
}

const (
	maxUploadSize = 20 << 20 // 20 MiB
	urlExpiry     = time.Hour
)

type Service struct {
	repo  repository.MediaRepository
	store storage.ObjectStore
}

func NewService(repo repository.MediaRepository, store storage.ObjectStore) *Service {
	return &Service{repo: repo, store: store}
}

func (s *Service) UploadMedia(ctx context.Context, in *UploadInput) (*model.Media, error) {
	var fields []apperrors.FieldError
	in.Filename = strings.TrimSpace(in.Filename)
	if in.Filename == "" {
		fields = append(fields, apperrors.FieldError{Field: "file", Message: "filename must not be empty"})
	}
	if len(in.Data) == 0 {
		fields = append(fields, apperrors.FieldError{Field: "file", Message: "must not be empty"})
	} else if len(in.Data) > maxUploadSize {
		fields = append(fields, apperrors.FieldError{Field: "file", Message: "must be at most 20 MiB"})
	}
	if len(fields) > 0 {
		return nil, apperrors.Validation(fields)
	}

	key, err := s.store.Upload(ctx, in.Data, in.Filename, in.ContentType)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to store file: %w", err))
	}

	media := &model.Media{
		Name:        in.Filename,
		ObjectKey:   key,
		ContentType: in.ContentType,
		Size:        int64(len(in.Data)),
		UploadedBy:  in.UploadedBy,
	}
	if err := s.repo.Create(ctx, media); err != nil {
		// The object is orphaned if we keep it; reclaim best-effort.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			log.Warn().Err(delErr).Str("object_key", key).Msg("failed to clean up orphaned object")
		}
		return nil, apperrors.FromPG(err, "media")
	}

	s.fillURL(ctx, media)
	return media, nil
}

func (s *Service) GetMedia(ctx context.Context, id int64) (*model.Media, error) {
	media, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.FromPG(err, "media")
	}
	s.fillURL(ctx, media)
	return media, nil
}

func (s *Service) ListMedia(ctx context.Context) ([]*model.Media, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.FromPG(err, "media")
	}
	for _, m := range items {
		s.fillURL(ctx, m)
	}
	return items, nil
}

func (s *Service) DeleteMedia(ctx context.Context, id int64) error {
	media, err := s.repo.Get(ctx, id)
	if err != nil {
		return apperrors.FromPG(err, "media")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.FromPG(err, "media")
	}

	if err := s.store.Delete(ctx, media.ObjectKey); err != nil {
		log.Warn().Err(err).Str("object_key", media.ObjectKey).Msg("failed to delete stored object")
	}
	return nil
}

// fillURL attaches a presigned link. A presign failure degrades the
// response rather than failing it.
func (s *Service) fillURL(ctx context.Context, media *model.Media) {
	url, err := s.store.PresignedURL(ctx, media.ObjectKey, urlExpiry)
	if err != nil {
		log.Warn().Err(err).Str("object_key", media.ObjectKey).Msg("failed to presign object")
		return
	}
	media.URL = url
}
