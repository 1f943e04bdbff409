package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/tourtrek/internal/domain"
	"github.com/Domenick1991/tourtrek/internal/kafka"
	"github.com/Domenick1991/tourtrek/internal/repository"
	"github.com/rs/zerolog"
)

var (
	ErrTourIDRequired     = errors.New("tour_id is required")
	ErrBuyerEmailRequired = errors.New("buyer_email is required")
	ErrStatusRequired     = errors.New("status is required")
)

type BookingUseCase interface {
	Create(ctx context.Context, booking domain.Booking) (*CreateResult, error)
	ListByBuyer(ctx context.Context, buyerEmail string) ([]domain.Booking, error)
	// UpdateStatus targets booking id; a non-empty buyerEmail restricts the
	// update to that buyer's booking.
	UpdateStatus(ctx context.Context, id, buyerEmail string, status domain.BookingStatus) (*domain.UpdateResult, error)
}

// CreateResult carries the outcome of both writes of a booking creation.
type CreateResult struct {
	BookingResult       *domain.InsertResult `json:"bookingResult"`
	PackageUpdateResult *domain.UpdateResult `json:"packageUpdateResult"`
}

type Cache interface {
	InvalidateFeatured(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	packages           repository.PackageRepository
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	now                func() time.Time
}

type BookingServiceOption func(*BookingService)

func WithCache(cache Cache) BookingServiceOption {
	return func(s *BookingService) {
		s.cache = cache
	}
}

func WithProducer(producer Producer, bookingTopic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.bookingTopic = bookingTopic
	}
}

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	packages repository.PackageRepository,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings: bookings,
		packages: packages,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Create inserts the booking and then increments the package's bookingCount.
// The two writes are not atomic: if the increment fails the booking stays
// persisted and the error is returned alongside the insert result. A tour_id
// that matches no package is not an error (matchedCount is 0).
func (s *BookingService) Create(ctx context.Context, booking domain.Booking) (*CreateResult, error) {
	if booking.TourID == "" {
		return nil, ErrTourIDRequired
	}
	if booking.BuyerEmail == "" {
		return nil, ErrBuyerEmailRequired
	}
	if booking.Status == "" {
		booking.Status = domain.BookingStatusPending
	}
	booking.ID = ""

	inserted, err := s.bookings.Insert(ctx, &booking)
	if err != nil {
		return nil, err
	}
	booking.ID = inserted.InsertedID
	result := &CreateResult{BookingResult: inserted}

	log := zerolog.Ctx(ctx)
	updated, err := s.packages.IncrementBookingCount(ctx, booking.TourID)
	if err != nil {
		log.Error().Err(err).
			Str("booking_id", booking.ID).
			Str("tour_id", booking.TourID).
			Msg("booking persisted but bookingCount not incremented")
		s.publish(ctx, kafka.EventBookingCreated, booking)
		return result, fmt.Errorf("increment booking count of tour %s: %w", booking.TourID, err)
	}
	result.PackageUpdateResult = updated

	if updated.MatchedCount == 0 {
		log.Warn().Str("booking_id", booking.ID).Str("tour_id", booking.TourID).Msg("booking references unknown tour package")
	}
	if s.cache != nil {
		if err := s.cache.InvalidateFeatured(ctx); err != nil {
			log.Warn().Err(err).Msg("invalidate featured packages")
		}
	}
	s.publish(ctx, kafka.EventBookingCreated, booking)
	return result, nil
}

func (s *BookingService) ListByBuyer(ctx context.Context, buyerEmail string) ([]domain.Booking, error) {
	return s.bookings.ListByBuyer(ctx, buyerEmail)
}

func (s *BookingService) UpdateStatus(ctx context.Context, id, buyerEmail string, status domain.BookingStatus) (*domain.UpdateResult, error) {
	if status == "" {
		return nil, ErrStatusRequired
	}

	res, updated, err := s.bookings.UpdateStatus(ctx, id, buyerEmail, status)
	if err != nil {
		return nil, err
	}
	if updated != nil {
		s.publish(ctx, kafka.EventBookingStatusUpdated, *updated)
	}
	return res, nil
}

// publish is best effort: a broker failure never fails the request.
func (s *BookingService) publish(ctx context.Context, eventType string, booking domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID,
		TourID:     booking.TourID,
		BuyerEmail: booking.BuyerEmail,
		Status:     string(booking.Status),
		OccurredAt: s.now(),
	}

	topics := []string{s.bookingTopic}
	if s.notificationsTopic != "" {
		topics = append(topics, s.notificationsTopic)
	}
	for _, topic := range topics {
		if err := s.producer.Publish(ctx, topic, booking.ID, event); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).
				Str("topic", topic).
				Str("booking_id", booking.ID).
				Msgf("failed to publish %s event", eventType)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
