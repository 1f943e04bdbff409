package domain

import "encoding/json"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking references a TourPackage by TourID and its buyer by email.
// Trip details (dates, guide, price) travel in Extra.
type Booking struct {
	ID         string
	TourID     string
	BuyerEmail string
	Status     BookingStatus
	Extra      Fields
}

func (b Booking) MarshalJSON() ([]byte, error) {
	known := map[string]any{
		"tour_id":     b.TourID,
		"buyer_email": b.BuyerEmail,
		"status":      b.Status,
	}
	if b.ID != "" {
		known["_id"] = b.ID
	}
	return flatten(b.Extra, known)
}

func (b *Booking) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.ID = takeString(raw, "_id")
	b.TourID = takeString(raw, "tour_id")
	b.BuyerEmail = takeString(raw, "buyer_email")
	b.Status = BookingStatus(takeString(raw, "status"))
	b.Extra = remaining(raw)
	return nil
}
