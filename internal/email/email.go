package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/tourtrek/internal/kafka"
	"github.com/rs/zerolog"
)

// Sender delivers booking notifications. Delivery is a structured log line
// until a mail provider is configured.
type Sender struct {
	log zerolog.Logger
}

func NewSender(log zerolog.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	s.log.Info().
		Str("to", event.BuyerEmail).
		Str("subject", Subject(event)).
		Str("booking_id", event.BookingID).
		Str("tour_id", event.TourID).
		Msg("send email")
	return nil
}

func Subject(event kafka.BookingEvent) string {
	switch event.Type {
	case kafka.EventBookingCreated:
		return "Your tour booking was received"
	case kafka.EventBookingStatusUpdated:
		return fmt.Sprintf("Your tour booking is now %s", event.Status)
	default:
		return "Update on your tour booking"
	}
}
