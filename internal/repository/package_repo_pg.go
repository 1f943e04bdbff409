package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Domenick1991/tourtrek/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PGPackageRepository struct {
	db Executor
}

func NewPGPackageRepository(db Executor) PackageRepository {
	return &PGPackageRepository{db: db}
}

func (r *PGPackageRepository) List(ctx context.Context, search string) ([]domain.TourPackage, error) {
	if search == "" {
		return r.query(ctx, `SELECT id::text, doc FROM tour_packages`)
	}
	return r.query(ctx, `SELECT id::text, doc FROM tour_packages WHERE doc->>'tour_name' ILIKE '%' || $1 || '%' ESCAPE '\'`, escapeLike(search))
}

func (r *PGPackageRepository) ListLimit(ctx context.Context, limit int64) ([]domain.TourPackage, error) {
	return r.query(ctx, `SELECT id::text, doc FROM tour_packages LIMIT $1`, limit)
}

func (r *PGPackageRepository) ListByGuide(ctx context.Context, guideEmail string) ([]domain.TourPackage, error) {
	return r.query(ctx, `SELECT id::text, doc FROM tour_packages WHERE doc->>'guide_email' = $1`, guideEmail)
}

func (r *PGPackageRepository) GetByID(ctx context.Context, id string) (*domain.TourPackage, error) {
	key, err := documentID(id)
	if err != nil {
		return nil, err
	}

	var doc []byte
	err = r.db.QueryRow(ctx, `SELECT doc FROM tour_packages WHERE id=$1`, key).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find package: %w", err)
	}

	var pkg domain.TourPackage
	if err := json.Unmarshal(doc, &pkg); err != nil {
		return nil, fmt.Errorf("decode package: %w", err)
	}
	pkg.ID = key
	return &pkg, nil
}

func (r *PGPackageRepository) Insert(ctx context.Context, pkg *domain.TourPackage) (*domain.InsertResult, error) {
	stored := *pkg
	stored.ID = ""
	doc, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("encode package: %w", err)
	}

	id := uuid.NewString()
	if _, err := r.db.Exec(ctx, `INSERT INTO tour_packages (id, doc) VALUES ($1, $2)`, id, doc); err != nil {
		return nil, fmt.Errorf("insert package: %w", err)
	}
	return &domain.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (r *PGPackageRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.UpdateResult, error) {
	key, err := documentID(id)
	if err != nil {
		return nil, err
	}
	patch, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode package update: %w", err)
	}

	tag, err := r.db.Exec(ctx, `UPDATE tour_packages SET doc = doc || $2::jsonb WHERE id=$1`, key, patch)
	if err != nil {
		return nil, fmt.Errorf("update package: %w", err)
	}
	return pgUpdateResult(tag), nil
}

func (r *PGPackageRepository) Delete(ctx context.Context, id string) (*domain.DeleteResult, error) {
	key, err := documentID(id)
	if err != nil {
		return nil, err
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM tour_packages WHERE id=$1`, key)
	if err != nil {
		return nil, fmt.Errorf("delete package: %w", err)
	}
	return &domain.DeleteResult{Acknowledged: true, DeletedCount: tag.RowsAffected()}, nil
}

func (r *PGPackageRepository) IncrementBookingCount(ctx context.Context, id string) (*domain.UpdateResult, error) {
	key, err := documentID(id)
	if err != nil {
		return nil, err
	}
	tag, err := r.db.Exec(ctx, `
        UPDATE tour_packages
        SET doc = jsonb_set(doc, '{bookingCount}', to_jsonb(COALESCE((doc->>'bookingCount')::bigint, 0) + 1))
        WHERE id = $1
    `, key)
	if err != nil {
		return nil, fmt.Errorf("increment booking count: %w", err)
	}
	return pgUpdateResult(tag), nil
}

func (r *PGPackageRepository) query(ctx context.Context, sql string, args ...any) ([]domain.TourPackage, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("find packages: %w", err)
	}
	defer rows.Close()

	packages := make([]domain.TourPackage, 0)
	for rows.Next() {
		var (
			id  string
			doc []byte
		)
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, err
		}
		var pkg domain.TourPackage
		if err := json.Unmarshal(doc, &pkg); err != nil {
			return nil, fmt.Errorf("decode package %s: %w", id, err)
		}
		pkg.ID = id
		packages = append(packages, pkg)
	}
	return packages, rows.Err()
}

var _ PackageRepository = (*PGPackageRepository)(nil)
