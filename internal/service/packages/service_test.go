package packages

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GanehsaConsulting/cms-admin-api/internal/cache"
	"github.com/GanehsaConsulting/cms-admin-api/internal/model"
	"github.com/GanehsaConsulting/cms-admin-api/internal/pricing"
	apperrors "github.com/GanehsaConsulting/cms-admin-api/pkg/errors"
)

// fakeRepo mirrors the repository's merge-and-derive behavior for a
// single stored package so update semantics are observable.
type fakeRepo struct {
	pkg         *model.Package
	serviceIDs  map[int64]bool
	updateCalls int
}

func newFakeRepo(pkg *model.Package, serviceIDs ...int64) *fakeRepo {
	ids := make(map[int64]bool, len(serviceIDs))
	for _, id := range serviceIDs {
		ids[id] = true
	}
	return &fakeRepo{pkg: pkg, serviceIDs: ids}
}

func (f *fakeRepo) Create(_ context.Context, in *model.PackageCreate) (*model.Package, error) {
	if !f.serviceIDs[in.ServiceID] {
		return nil, apperrors.NotFound("service")
	}
	f.pkg = &model.Package{
		Base:          model.Base{ID: 1},
		ServiceID:     in.ServiceID,
		Type:          in.Type,
		Price:         in.Price,
		PriceOriginal: pricing.ReferencePrice(in.Price, in.Discount),
		Discount:      in.Discount,
		Link:          in.Link,
		Highlight:     in.Highlight,
		Features:      cleanFeatures(in.Features),
		Requirements:  cleanNames(in.Requirements),
	}
	return f.pkg, nil
}

func (f *fakeRepo) Get(_ context.Context, id int64) (*model.Package, error) {
	if f.pkg == nil || f.pkg.ID != id {
		return nil, apperrors.NotFound("package")
	}
	return f.pkg, nil
}

func (f *fakeRepo) List(_ context.Context, serviceID int64) ([]*model.Package, error) {
	if f.pkg != nil && f.pkg.ServiceID == serviceID {
		return []*model.Package{f.pkg}, nil
	}
	return nil, nil
}

func (f *fakeRepo) Update(_ context.Context, id int64, upd *model.PackageUpdate) (*model.Package, error) {
	f.updateCalls++
	if f.pkg == nil || f.pkg.ID != id {
		return nil, apperrors.NotFound("package")
	}
	if upd.ServiceID != nil && *upd.ServiceID != f.pkg.ServiceID {
		if !f.serviceIDs[*upd.ServiceID] {
			return nil, apperrors.NotFound("service")
		}
		f.pkg.ServiceID = *upd.ServiceID
	}
	if upd.Type != nil {
		f.pkg.Type = strings.TrimSpace(*upd.Type)
	}
	if upd.Price != nil {
		f.pkg.Price = *upd.Price
	}
	if upd.Discount != nil {
		f.pkg.Discount = *upd.Discount
	}
	if upd.Link != nil {
		f.pkg.Link = strings.TrimSpace(*upd.Link)
	}
	if upd.Highlight != nil {
		f.pkg.Highlight = *upd.Highlight
	}
	f.pkg.PriceOriginal = pricing.ReferencePrice(f.pkg.Price, f.pkg.Discount)
	if upd.Features != nil {
		f.pkg.Features = cleanFeatures(*upd.Features)
	}
	if upd.Requirements != nil {
		f.pkg.Requirements = cleanNames(*upd.Requirements)
	}
	return f.pkg, nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if f.pkg == nil || f.pkg.ID != id {
		return apperrors.NotFound("package")
	}
	f.pkg = nil
	return nil
}

func cleanFeatures(in []model.FeatureInput) []model.PackageFeature {
	out := make([]model.PackageFeature, 0, len(in))
	for _, fi := range in {
		name := strings.TrimSpace(fi.Feature)
		if name == "" {
			continue
		}
		out = append(out, model.PackageFeature{Feature: name, Status: fi.Status})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Feature < out[j].Feature })
	return out
}

func cleanNames(in []string) []string {
	out := make([]string, 0, len(in))
	for _, name := range in {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func storedPackage() *model.Package {
	return &model.Package{
		Base:          model.Base{ID: 42},
		ServiceID:     7,
		Type:          "Business",
		Price:         100000,
		PriceOriginal: 111111,
		Discount:      10,
		Link:          "https://order.example.com/business",
		Features:      []model.PackageFeature{{Feature: "Hosting", Status: true}},
		Requirements:  []string{"Brand guidelines"},
	}
}

func ptr[T any](v T) *T { return &v }

func TestUpdateAggregatesValidationErrors(t *testing.T) {
	repo := newFakeRepo(storedPackage(), 7)
	svc := NewService(repo, cache.Noop(), Limits{})

	_, err := svc.UpdatePackage(context.Background(), 42, &model.PackageUpdate{
		Price:    ptr(int64(-5)),
		Discount: ptr(150),
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
	require.Len(t, appErr.Fields, 2)
	assert.Equal(t, "price", appErr.Fields[0].Field)
	assert.Equal(t, "discount", appErr.Fields[1].Field)

	// No transaction was opened on a bad payload.
	assert.Zero(t, repo.updateCalls)
	assert.Equal(t, int64(100000), repo.pkg.Price)
}

func TestUpdateRejectsFullDiscount(t *testing.T) {
	svc := NewService(newFakeRepo(storedPackage(), 7), cache.Noop(), Limits{})

	_, err := svc.UpdatePackage(context.Background(), 42, &model.PackageUpdate{Discount: ptr(100)})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
	assert.Equal(t, "discount", appErr.Fields[0].Field)
}

func TestUpdateRecomputesReferencePrice(t *testing.T) {
	svc := NewService(newFakeRepo(storedPackage(), 7), cache.Noop(), Limits{})

	// Price omitted: final price stays 100000, discount becomes 20.
	pkg, err := svc.UpdatePackage(context.Background(), 42, &model.PackageUpdate{Discount: ptr(20)})

	require.NoError(t, err)
	assert.Equal(t, int64(100000), pkg.Price)
	assert.Equal(t, 20, pkg.Discount)
	assert.Equal(t, int64(125000), pkg.PriceOriginal)
}

func TestUpdateOmittedFeaturesLeftUntouched(t *testing.T) {
	svc := NewService(newFakeRepo(storedPackage(), 7), cache.Noop(), Limits{})

	pkg, err := svc.UpdatePackage(context.Background(), 42, &model.PackageUpdate{Price: ptr(int64(90000))})

	require.NoError(t, err)
	assert.Equal(t, []model.PackageFeature{{Feature: "Hosting", Status: true}}, pkg.Features)
	assert.Equal(t, []string{"Brand guidelines"}, pkg.Requirements)
}

func TestUpdateEmptyFeaturesClearsAll(t *testing.T) {
	svc := NewService(newFakeRepo(storedPackage(), 7), cache.Noop(), Limits{})

	pkg, err := svc.UpdatePackage(context.Background(), 42, &model.PackageUpdate{
		Features:     ptr([]model.FeatureInput{}),
		Requirements: ptr([]string{}),
	})

	require.NoError(t, err)
	assert.Empty(t, pkg.Features)
	assert.Empty(t, pkg.Requirements)
}

func TestUpdateIdempotentAtSetLevel(t *testing.T) {
	svc := NewService(newFakeRepo(storedPackage(), 7), cache.Noop(), Limits{})

	upd := &model.PackageUpdate{
		Features: ptr([]model.FeatureInput{
			{Feature: "SEO", Status: true},
			{Feature: "Hosting", Status: false},
		}),
		Requirements: ptr([]string{"Logo", "Domain"}),
	}

	first, err := svc.UpdatePackage(context.Background(), 42, upd)
	require.NoError(t, err)
	second, err := svc.UpdatePackage(context.Background(), 42, upd)
	require.NoError(t, err)

	assert.Equal(t, first.Features, second.Features)
	assert.Equal(t, first.Requirements, second.Requirements)
}

func TestUpdateUnknownPackageReturnsNotFound(t *testing.T) {
	svc := NewService(newFakeRepo(storedPackage(), 7), cache.Noop(), Limits{})

	_, err := svc.UpdatePackage(context.Background(), 999, &model.PackageUpdate{Price: ptr(int64(1))})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
}

func TestUpdateUnknownServiceReturnsNotFound(t *testing.T) {
	repo := newFakeRepo(storedPackage(), 7)
	svc := NewService(repo, cache.Noop(), Limits{})

	_, err := svc.UpdatePackage(context.Background(), 42, &model.PackageUpdate{ServiceID: ptr(int64(99))})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
	assert.Contains(t, appErr.Message, "service")
}

func TestUpdateCollectionCaps(t *testing.T) {
	svc := NewService(newFakeRepo(storedPackage(), 7), cache.Noop(), Limits{MaxFeatures: 2, MaxRequirements: 1})

	_, err := svc.UpdatePackage(context.Background(), 42, &model.PackageUpdate{
		Features: ptr([]model.FeatureInput{
			{Feature: "a"}, {Feature: "b"}, {Feature: "c"},
		}),
		Requirements: ptr([]string{"x", "y"}),
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Len(t, appErr.Fields, 2)
	assert.Equal(t, "features", appErr.Fields[0].Field)
	assert.Equal(t, "requirements", appErr.Fields[1].Field)
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newFakeRepo(nil, 7), cache.Noop(), Limits{})

	_, err := svc.CreatePackage(context.Background(), &model.PackageCreate{
		ServiceID: 0,
		Type:      "   ",
		Price:     -1,
		Discount:  100,
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
	assert.Len(t, appErr.Fields, 4)
}

func TestCreateDerivesReferencePrice(t *testing.T) {
	svc := NewService(newFakeRepo(nil, 7), cache.Noop(), Limits{})

	pkg, err := svc.CreatePackage(context.Background(), &model.PackageCreate{
		ServiceID: 7,
		Type:      "Starter",
		Price:     75000,
		Discount:  25,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(100000), pkg.PriceOriginal)
}

func TestGetPopulatesCache(t *testing.T) {
	repo := newFakeRepo(storedPackage(), 7)
	c := &countingCache{PackageCache: cache.Noop()}
	svc := NewService(repo, c, Limits{})

	_, err := svc.GetPackage(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 1, c.sets)
}

type countingCache struct {
	cache.PackageCache
	sets int
}

func (c *countingCache) Set(ctx context.Context, pkg *model.Package) error {
	c.sets++
	return c.PackageCache.Set(ctx, pkg)
}
