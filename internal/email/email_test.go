package email

import (
	"bytes"
	"context"
	"testing"

	"github.com/Domenick1991/tourtrek/internal/kafka"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "Your tour booking was received", Subject(kafka.BookingEvent{Type: kafka.EventBookingCreated}))
	assert.Equal(t, "Your tour booking is now confirmed", Subject(kafka.BookingEvent{Type: kafka.EventBookingStatusUpdated, Status: "confirmed"}))
	assert.Equal(t, "Update on your tour booking", Subject(kafka.BookingEvent{Type: "other"}))
}

func TestSender_Send(t *testing.T) {
	var buf bytes.Buffer
	s := NewSender(zerolog.New(&buf))

	err := s.Send(context.Background(), kafka.BookingEvent{Type: kafka.EventBookingCreated, BuyerEmail: "b@x.com", BookingID: "b1"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"to":"b@x.com"`)
	assert.Contains(t, buf.String(), `"booking_id":"b1"`)
}
