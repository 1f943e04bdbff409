package repository

import (
	"context"

	"github.com/Domenick1991/tourtrek/internal/domain"
)

const (
	UsersCollection    = "users"
	PackagesCollection = "tourPackages"
	BookingsCollection = "bookings"
)

type UserRepository interface {
	// FindByEmail returns domain.ErrNotFound when no user has the email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Insert returns domain.ErrDuplicate when the email is already taken.
	Insert(ctx context.Context, user *domain.User) (*domain.InsertResult, error)
}

type PackageRepository interface {
	// List matches search case-insensitively as a literal substring of
	// tour_name. An empty search returns every package.
	List(ctx context.Context, search string) ([]domain.TourPackage, error)
	ListLimit(ctx context.Context, limit int64) ([]domain.TourPackage, error)
	ListByGuide(ctx context.Context, guideEmail string) ([]domain.TourPackage, error)
	GetByID(ctx context.Context, id string) (*domain.TourPackage, error)
	Insert(ctx context.Context, pkg *domain.TourPackage) (*domain.InsertResult, error)
	// Update overwrites exactly the given fields.
	Update(ctx context.Context, id string, fields map[string]any) (*domain.UpdateResult, error)
	Delete(ctx context.Context, id string) (*domain.DeleteResult, error)
	// IncrementBookingCount adds one to bookingCount in a single atomic write.
	IncrementBookingCount(ctx context.Context, id string) (*domain.UpdateResult, error)
}

type BookingRepository interface {
	Insert(ctx context.Context, booking *domain.Booking) (*domain.InsertResult, error)
	ListByBuyer(ctx context.Context, buyerEmail string) ([]domain.Booking, error)
	// UpdateStatus sets status on booking id. A non-empty buyerEmail
	// additionally restricts the match to that buyer's booking. The updated
	// booking is returned, or nil when nothing matched.
	UpdateStatus(ctx context.Context, id, buyerEmail string, status domain.BookingStatus) (*domain.UpdateResult, *domain.Booking, error)
}
