package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/GanehsaConsulting/cms-admin-api/internal/model"
	"github.com/GanehsaConsulting/cms-admin-api/internal/pricing"
	"github.com/GanehsaConsulting/cms-admin-api/internal/repository"
	apperrors "github.com/GanehsaConsulting/cms-admin-api/pkg/errors"
)

// PackageTxConfig bounds the update transaction. BatchSize caps how many
// join rows a single reconciliation statement touches; TxTimeout covers
// the whole transaction including the wait for a connection.
type PackageTxConfig struct {
	BatchSize int
	TxTimeout time.Duration
}

type packageRepository struct {
	BaseRepository
	cfg PackageTxConfig
}

func NewPackageRepository(base BaseRepository, cfg PackageTxConfig) repository.PackageRepository {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.TxTimeout <= 0 {
		cfg.TxTimeout = 30 * time.Second
	}
	return &packageRepository{BaseRepository: base, cfg: cfg}
}

const packageColumns = `
	id, service_id, type, price, price_original, discount, link, highlight,
	created_at, updated_at
`

func (r *packageRepository) Create(ctx context.Context, in *model.PackageCreate) (*model.Package, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.TxTimeout)
	defer cancel()

	var created *model.Package
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := serviceExists(ctx, tx, in.ServiceID); err != nil {
			return err
		}

		now := time.Now()
		var id int64
		query := `
			INSERT INTO packages (
				service_id, type, price, price_original, discount, link, highlight,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id
		`
		err := tx.GetContext(ctx, &id, query,
			in.ServiceID,
			in.Type,
			in.Price,
			pricing.ReferencePrice(in.Price, in.Discount),
			in.Discount,
			in.Link,
			in.Highlight,
			now,
			now,
		)
		if err != nil {
			return fmt.Errorf("failed to create package: %w", err)
		}

		if err := r.reconcileFeatures(ctx, tx, id, in.Features); err != nil {
			return err
		}
		if err := r.reconcileRequirements(ctx, tx, id, in.Requirements); err != nil {
			return err
		}

		created, err = loadPackage(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *packageRepository) Get(ctx context.Context, id int64) (*model.Package, error) {
	return loadPackage(ctx, r.db, id)
}

func (r *packageRepository) List(ctx context.Context, serviceID int64) ([]*model.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE service_id = $1 ORDER BY price ASC`
	var pkgs []*model.Package
	if err := r.db.SelectContext(ctx, &pkgs, query, serviceID); err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	ids := make([]int64, len(pkgs))
	byID := make(map[int64]*model.Package, len(pkgs))
	for i, p := range pkgs {
		ids[i] = p.ID
		p.Features = []model.PackageFeature{}
		p.Requirements = []string{}
		byID[p.ID] = p
	}
	if len(ids) == 0 {
		return pkgs, nil
	}

	var featureRows []struct {
		PackageID int64  `db:"package_id"`
		Name      string `db:"name"`
		Status    bool   `db:"status"`
	}
	err := r.db.SelectContext(ctx, &featureRows, `
		SELECT pf.package_id, f.name, pf.status
		FROM package_features pf
		JOIN features f ON f.id = pf.feature_id
		WHERE pf.package_id = ANY($1)
		ORDER BY f.name ASC
	`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list package features: %w", err)
	}
	for _, row := range featureRows {
		p := byID[row.PackageID]
		p.Features = append(p.Features, model.PackageFeature{Feature: row.Name, Status: row.Status})
	}

	var reqRows []struct {
		PackageID int64  `db:"package_id"`
		Name      string `db:"name"`
	}
	err = r.db.SelectContext(ctx, &reqRows, `
		SELECT pr.package_id, rq.name
		FROM package_requirements pr
		JOIN requirements rq ON rq.id = pr.requirement_id
		WHERE pr.package_id = ANY($1)
		ORDER BY rq.name ASC
	`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list package requirements: %w", err)
	}
	for _, row := range reqRows {
		p := byID[row.PackageID]
		p.Requirements = append(p.Requirements, row.Name)
	}

	return pkgs, nil
}

// Update applies a partial update, reconciles join rows when the
// corresponding field was supplied, and returns the re-read snapshot.
// Everything runs in one transaction; the reference price is recomputed
// from the final price/discount on every call.
func (r *packageRepository) Update(ctx context.Context, id int64, upd *model.PackageUpdate) (*model.Package, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.TxTimeout)
	defer cancel()

	var updated *model.Package
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		var existing model.Package
		query := `SELECT ` + packageColumns + ` FROM packages WHERE id = $1`
		if err := tx.GetContext(ctx, &existing, query, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.NotFound("package")
			}
			return fmt.Errorf("failed to load package: %w", err)
		}

		if upd.ServiceID != nil && *upd.ServiceID != existing.ServiceID {
			if err := serviceExists(ctx, tx, *upd.ServiceID); err != nil {
				return err
			}
			existing.ServiceID = *upd.ServiceID
		}
		if upd.Type != nil {
			existing.Type = strings.TrimSpace(*upd.Type)
		}
		if upd.Price != nil {
			existing.Price = *upd.Price
		}
		if upd.Discount != nil {
			existing.Discount = *upd.Discount
		}
		if upd.Link != nil {
			existing.Link = strings.TrimSpace(*upd.Link)
		}
		if upd.Highlight != nil {
			existing.Highlight = *upd.Highlight
		}

		// Always derived, even when neither price nor discount changed.
		existing.PriceOriginal = pricing.ReferencePrice(existing.Price, existing.Discount)
		existing.UpdatedAt = time.Now()

		_, err := tx.ExecContext(ctx, `
			UPDATE packages
			SET service_id = $1, type = $2, price = $3, price_original = $4,
			    discount = $5, link = $6, highlight = $7, updated_at = $8
			WHERE id = $9
		`,
			existing.ServiceID,
			existing.Type,
			existing.Price,
			existing.PriceOriginal,
			existing.Discount,
			existing.Link,
			existing.Highlight,
			existing.UpdatedAt,
			id,
		)
		if err != nil {
			return fmt.Errorf("failed to update package: %w", err)
		}

		if upd.Features != nil {
			if err := r.reconcileFeatures(ctx, tx, id, *upd.Features); err != nil {
				return err
			}
		}
		if upd.Requirements != nil {
			if err := r.reconcileRequirements(ctx, tx, id, *upd.Requirements); err != nil {
				return err
			}
		}

		updated, err = loadPackage(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *packageRepository) Delete(ctx context.Context, id int64) error {
	// Join rows go with the package via ON DELETE CASCADE.
	result, err := r.db.ExecContext(ctx, `DELETE FROM packages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("package")
	}
	return nil
}

// reconcileFeatures replaces the package's feature join rows so that
// exactly the desired set remains. Shared feature rows are created on
// demand; batches bound statement size, not semantics.
func (r *packageRepository) reconcileFeatures(ctx context.Context, tx *sqlx.Tx, packageID int64, desired []model.FeatureInput) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM package_features WHERE package_id = $1`, packageID); err != nil {
		return fmt.Errorf("failed to clear package features: %w", err)
	}

	cleaned := cleanFeatures(desired)
	for _, batch := range chunk(cleaned, r.cfg.BatchSize) {
		names := make([]string, len(batch))
		for i, f := range batch {
			names[i] = f.Feature
		}
		idsByName, err := upsertNames(ctx, tx, "features", names)
		if err != nil {
			return err
		}

		values := make([]string, 0, len(batch))
		args := make([]interface{}, 0, len(batch)*3)
		for _, f := range batch {
			n := len(args)
			values = append(values, fmt.Sprintf("($%d, $%d, $%d)", n+1, n+2, n+3))
			args = append(args, packageID, idsByName[f.Feature], f.Status)
		}
		query := `INSERT INTO package_features (package_id, feature_id, status) VALUES ` + strings.Join(values, ", ")
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert package features: %w", err)
		}
	}
	return nil
}

// reconcileRequirements is the same shape without the per-package flag.
func (r *packageRepository) reconcileRequirements(ctx context.Context, tx *sqlx.Tx, packageID int64, desired []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM package_requirements WHERE package_id = $1`, packageID); err != nil {
		return fmt.Errorf("failed to clear package requirements: %w", err)
	}

	for _, batch := range chunk(cleanNames(desired), r.cfg.BatchSize) {
		idsByName, err := upsertNames(ctx, tx, "requirements", batch)
		if err != nil {
			return err
		}

		values := make([]string, 0, len(batch))
		args := make([]interface{}, 0, len(batch)*2)
		for _, name := range batch {
			n := len(args)
			values = append(values, fmt.Sprintf("($%d, $%d)", n+1, n+2))
			args = append(args, packageID, idsByName[name])
		}
		query := `INSERT INTO package_requirements (package_id, requirement_id) VALUES ` + strings.Join(values, ", ")
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert package requirements: %w", err)
		}
	}
	return nil
}

// upsertNames creates missing lookup rows by unique name and returns the
// id for every name. The no-op DO UPDATE makes RETURNING cover rows that
// already existed.
func upsertNames(ctx context.Context, tx *sqlx.Tx, table string, names []string) (map[string]int64, error) {
	values := make([]string, len(names))
	args := make([]interface{}, len(names))
	for i, name := range names {
		values[i] = fmt.Sprintf("($%d)", i+1)
		args[i] = name
	}

	query := `
		INSERT INTO ` + table + ` (name) VALUES ` + strings.Join(values, ", ") + `
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name
	`
	var rows []struct {
		ID   int64  `db:"id"`
		Name string `db:"name"`
	}
	if err := sqlx.SelectContext(ctx, tx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to upsert %s: %w", table, err)
	}

	idsByName := make(map[string]int64, len(rows))
	for _, row := range rows {
		idsByName[row.Name] = row.ID
	}
	return idsByName, nil
}

// cleanFeatures trims names, drops empties, and deduplicates so a name
// appears at most once per statement. The last status for a name wins.
func cleanFeatures(in []model.FeatureInput) []model.FeatureInput {
	out := make([]model.FeatureInput, 0, len(in))
	index := make(map[string]int, len(in))
	for _, f := range in {
		name := strings.TrimSpace(f.Feature)
		if name == "" {
			continue
		}
		if i, seen := index[name]; seen {
			out[i].Status = f.Status
			continue
		}
		index[name] = len(out)
		out = append(out, model.FeatureInput{Feature: name, Status: f.Status})
	}
	return out
}

func cleanNames(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, name := range in {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

func chunk[T any](in []T, size int) [][]T {
	var out [][]T
	for len(in) > size {
		out = append(out, in[:size])
		in = in[size:]
	}
	if len(in) > 0 {
		out = append(out, in)
	}
	return out
}

func serviceExists(ctx context.Context, tx *sqlx.Tx, serviceID int64) error {
	var exists bool
	err := tx.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM services WHERE id = $1)`, serviceID)
	if err != nil {
		return fmt.Errorf("failed to check service: %w", err)
	}
	if !exists {
		return apperrors.NotFound("service")
	}
	return nil
}

// loadPackage reads a package with its service and name-ordered
// feature/requirement collections. Works on the pool or inside a tx.
func loadPackage(ctx context.Context, q sqlx.QueryerContext, id int64) (*model.Package, error) {
	var pkg model.Package
	query := `SELECT ` + packageColumns + ` FROM packages WHERE id = $1`
	if err := sqlx.GetContext(ctx, q, &pkg, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("package")
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}

	var svc model.Service
	err := sqlx.GetContext(ctx, q, &svc, `
		SELECT id, name, slug, description, created_at, updated_at
		FROM services WHERE id = $1
	`, pkg.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get package service: %w", err)
	}
	pkg.Service = &svc

	pkg.Features = []model.PackageFeature{}
	err = sqlx.SelectContext(ctx, q, &pkg.Features, `
		SELECT f.name, pf.status
		FROM package_features pf
		JOIN features f ON f.id = pf.feature_id
		WHERE pf.package_id = $1
		ORDER BY f.name ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get package features: %w", err)
	}

	pkg.Requirements = []string{}
	err = sqlx.SelectContext(ctx, q, &pkg.Requirements, `
		SELECT rq.name
		FROM package_requirements pr
		JOIN requirements rq ON rq.id = pr.requirement_id
		WHERE pr.package_id = $1
		ORDER BY rq.name ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get package requirements: %w", err)
	}

	return &pkg, nil
}
