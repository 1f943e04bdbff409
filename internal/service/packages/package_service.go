package packages

import (
	"context"
	"errors"

	"github.com/Domenick1991/tourtrek/internal/domain"
	"github.com/Domenick1991/tourtrek/internal/repository"
	"github.com/rs/zerolog"
)

// FeaturedLimit caps the featured listing on the home page.
const FeaturedLimit = 6

type PackageUseCase interface {
	List(ctx context.Context, search string) ([]domain.TourPackage, error)
	Featured(ctx context.Context) ([]domain.TourPackage, error)
	// Get returns nil, nil when the package does not exist.
	Get(ctx context.Context, id string) (*domain.TourPackage, error)
	ListByGuide(ctx context.Context, guideEmail string) ([]domain.TourPackage, error)
	Create(ctx context.Context, pkg domain.TourPackage) (*domain.InsertResult, error)
	Update(ctx context.Context, id string, update domain.PackageUpdate) (*domain.UpdateResult, error)
	Delete(ctx context.Context, id string) (*domain.DeleteResult, error)
}

type FeaturedCache interface {
	GetFeatured(ctx context.Context) ([]domain.TourPackage, error)
	SetFeatured(ctx context.Context, packages []domain.TourPackage) error
	InvalidateFeatured(ctx context.Context) error
}

type PackageService struct {
	repo  repository.PackageRepository
	cache FeaturedCache
}

type PackageServiceOption func(*PackageService)

func WithCache(cache FeaturedCache) PackageServiceOption {
	return func(s *PackageService) {
		s.cache = cache
	}
}

func NewPackageService(repo repository.PackageRepository, opts ...PackageServiceOption) *PackageService {
	s := &PackageService{repo: repo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PackageService) List(ctx context.Context, search string) ([]domain.TourPackage, error) {
	return s.repo.List(ctx, search)
}

func (s *PackageService) Featured(ctx context.Context) ([]domain.TourPackage, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFeatured(ctx); err == nil && cached != nil {
			return limit(cached), nil
		}
	}

	packages, err := s.repo.ListLimit(ctx, FeaturedLimit)
	if err != nil {
		return nil, err
	}
	packages = limit(packages)
	if s.cache != nil {
		if err := s.cache.SetFeatured(ctx, packages); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("cache featured packages")
		}
	}
	return packages, nil
}

func (s *PackageService) Get(ctx context.Context, id string) (*domain.TourPackage, error) {
	pkg, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return pkg, err
}

func (s *PackageService) ListByGuide(ctx context.Context, guideEmail string) ([]domain.TourPackage, error) {
	return s.repo.ListByGuide(ctx, guideEmail)
}

func (s *PackageService) Create(ctx context.Context, pkg domain.TourPackage) (*domain.InsertResult, error) {
	// bookingCount only ever moves through booking creation.
	pkg.ID = ""
	pkg.BookingCount = 0

	res, err := s.repo.Insert(ctx, &pkg)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return res, nil
}

func (s *PackageService) Update(ctx context.Context, id string, update domain.PackageUpdate) (*domain.UpdateResult, error) {
	res, err := s.repo.Update(ctx, id, update.Fields())
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return res, nil
}

func (s *PackageService) Delete(ctx context.Context, id string) (*domain.DeleteResult, error) {
	res, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return res, nil
}

func (s *PackageService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFeatured(ctx); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("invalidate featured packages")
	}
}

func limit(packages []domain.TourPackage) []domain.TourPackage {
	if len(packages) > FeaturedLimit {
		return packages[:FeaturedLimit]
	}
	return packages
}

var _ PackageUseCase = (*PackageService)(nil)
