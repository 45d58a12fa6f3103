package packages

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/GanehsaConsulting/cms-admin-api/internal/cache"
	"github.com/GanehsaConsulting/cms-admin-api/internal/model"
	"github.com/GanehsaConsulting/cms-admin-api/internal/pricing"
	"github.com/GanehsaConsulting/cms-admin-api/internal/repository"
	apperrors "github.com/GanehsaConsulting/cms-admin-api/pkg/errors"
)

type PackageServicer interface {
	CreatePackage(ctx context.Context, in *model.PackageCreate) (*model.Package, error)
	GetPackage(ctx context.Context, id int64) (*model.Package, error)
	ListPackages(ctx context.Context, serviceID int64) ([]*model.Package, error)
	UpdatePackage(ctx context.Context, id int64, upd *model.PackageUpdate) (*model.Package, error)
	DeletePackage(ctx context.Context, id int64) error
}

// Limits caps the reconciled collections per request.
type Limits struct {
	MaxFeatures     int
	MaxRequirements int
}

const (
	maxTypeLength = 100
	maxLinkLength = 500
)

type Service struct {
	repo   repository.PackageRepository
	cache  cache.PackageCache
	limits Limits
}

func NewService(repo repository.PackageRepository, c cache.PackageCache, limits Limits) *Service {
	if limits.MaxFeatures <= 0 {
		limits.MaxFeatures = 100
	}
	if limits.MaxRequirements <= 0 {
		limits.MaxRequirements = 50
	}
	return &Service{repo: repo, cache: c, limits: limits}
}

func (s *Service) CreatePackage(ctx context.Context, in *model.PackageCreate) (*model.Package, error) {
	var fields []apperrors.FieldError
	if in.ServiceID <= 0 {
		fields = append(fields, apperrors.FieldError{Field: "serviceId", Message: "must be a positive integer"})
	}
	in.Type = strings.TrimSpace(in.Type)
	fields = append(fields, validateType(&in.Type)...)
	if in.Price < 0 {
		fields = append(fields, apperrors.FieldError{Field: "price", Message: "must be a non-negative integer"})
	}
	fields = append(fields, validateDiscount(in.Discount)...)
	in.Link = strings.TrimSpace(in.Link)
	if len(in.Link) > maxLinkLength {
		fields = append(fields, apperrors.FieldError{Field: "link", Message: fmt.Sprintf("must be at most %d characters", maxLinkLength)})
	}
	fields = append(fields, s.validateCollections(len(in.Features), len(in.Requirements))...)
	if len(fields) > 0 {
		return nil, apperrors.Validation(fields)
	}

	pkg, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, apperrors.FromPG(err, "package")
	}
	return pkg, nil
}

func (s *Service) GetPackage(ctx context.Context, id int64) (*model.Package, error) {
	if pkg, ok, err := s.cache.Get(ctx, id); err != nil {
		log.Warn().Err(err).Int64("package_id", id).Msg("package cache read failed")
	} else if ok {
		return pkg, nil
	}

	pkg, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.FromPG(err, "package")
	}

	if err := s.cache.Set(ctx, pkg); err != nil {
		log.Warn().Err(err).Int64("package_id", id).Msg("package cache write failed")
	}
	return pkg, nil
}

func (s *Service) ListPackages(ctx context.Context, serviceID int64) ([]*model.Package, error) {
	pkgs, err := s.repo.List(ctx, serviceID)
	if err != nil {
		return nil, apperrors.FromPG(err, "package")
	}
	return pkgs, nil
}

// UpdatePackage validates the whole payload up front, then hands it to
// the repository's single-transaction update. Violations are aggregated
// so the caller sees every failing field at once; nothing touches the
// database until the payload is clean.
func (s *Service) UpdatePackage(ctx context.Context, id int64, upd *model.PackageUpdate) (*model.Package, error) {
	if fields := s.validateUpdate(upd); len(fields) > 0 {
		return nil, apperrors.Validation(fields)
	}

	pkg, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, apperrors.FromPG(err, "package")
	}

	if err := s.cache.Invalidate(ctx, id); err != nil {
		log.Warn().Err(err).Int64("package_id", id).Msg("package cache invalidation failed")
	}
	return pkg, nil
}

func (s *Service) DeletePackage(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.FromPG(err, "package")
	}

	if err := s.cache.Invalidate(ctx, id); err != nil {
		log.Warn().Err(err).Int64("package_id", id).Msg("package cache invalidation failed")
	}
	return nil
}

func (s *Service) validateUpdate(upd *model.PackageUpdate) []apperrors.FieldError {
	var fields []apperrors.FieldError

	if upd.ServiceID != nil && *upd.ServiceID <= 0 {
		fields = append(fields, apperrors.FieldError{Field: "serviceId", Message: "must be a positive integer"})
	}
	if upd.Price != nil && *upd.Price < 0 {
		fields = append(fields, apperrors.FieldError{Field: "price", Message: "must be a non-negative integer"})
	}
	if upd.Discount != nil {
		fields = append(fields, validateDiscount(*upd.Discount)...)
	}
	if upd.Type != nil {
		fields = append(fields, validateType(upd.Type)...)
	}
	if upd.Link != nil {
		trimmed := strings.TrimSpace(*upd.Link)
		if trimmed == "" {
			fields = append(fields, apperrors.FieldError{Field: "link", Message: "must not be empty"})
		} else if len(trimmed) > maxLinkLength {
			fields = append(fields, apperrors.FieldError{Field: "link", Message: fmt.Sprintf("must be at most %d characters", maxLinkLength)})
		}
	}

	featureCount, requirementCount := 0, 0
	if upd.Features != nil {
		featureCount = len(*upd.Features)
	}
	if upd.Requirements != nil {
		requirementCount = len(*upd.Requirements)
	}
	fields = append(fields, s.validateCollections(featureCount, requirementCount)...)

	return fields
}

func (s *Service) validateCollections(featureCount, requirementCount int) []apperrors.FieldError {
	var fields []apperrors.FieldError
	if featureCount > s.limits.MaxFeatures {
		fields = append(fields, apperrors.FieldError{
			Field:   "features",
			Message: fmt.Sprintf("must have at most %d entries", s.limits.MaxFeatures),
		})
	}
	if requirementCount > s.limits.MaxRequirements {
		fields = append(fields, apperrors.FieldError{
			Field:   "requirements",
			Message: fmt.Sprintf("must have at most %d entries", s.limits.MaxRequirements),
		})
	}
	return fields
}

func validateDiscount(discount int) []apperrors.FieldError {
	if discount < 0 || discount > pricing.MaxDiscount {
		return []apperrors.FieldError{{
			Field:   "discount",
			Message: fmt.Sprintf("must be an integer between 0 and %d", pricing.MaxDiscount),
		}}
	}
	return nil
}

func validateType(t *string) []apperrors.FieldError {
	trimmed := strings.TrimSpace(*t)
	if trimmed == "" {
		return []apperrors.FieldError{{Field: "type", Message: "must not be empty"}}
	}
	if len(trimmed) > maxTypeLength {
		return []apperrors.FieldError{{
			Field:   "type",
			Message: fmt.Sprintf("must be at most %d characters", maxTypeLength),
		}}
	}
	return nil
}
