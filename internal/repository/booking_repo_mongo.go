package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/tourtrek/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bookingDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	TourID     string             `bson:"tour_id"`
	BuyerEmail string             `bson:"buyer_email"`
	Status     string             `bson:"status"`
	Extra      bson.M             `bson:",inline"`
}

func (d bookingDocument) toDomain() domain.Booking {
	return domain.Booking{
		ID:         d.ID.Hex(),
		TourID:     d.TourID,
		BuyerEmail: d.BuyerEmail,
		Status:     domain.BookingStatus(d.Status),
		Extra:      domain.Fields(d.Extra),
	}
}

type MongoBookingRepository struct {
	coll *mongo.Collection
}

func NewMongoBookingRepository(db *mongo.Database) BookingRepository {
	return &MongoBookingRepository{coll: db.Collection(BookingsCollection)}
}

func (r *MongoBookingRepository) Insert(ctx context.Context, booking *domain.Booking) (*domain.InsertResult, error) {
	res, err := r.coll.InsertOne(ctx, bookingDocument{
		TourID:     booking.TourID,
		BuyerEmail: booking.BuyerEmail,
		Status:     string(booking.Status),
		Extra:      bson.M(booking.Extra),
	})
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	return insertResult(res), nil
}

func (r *MongoBookingRepository) ListByBuyer(ctx context.Context, buyerEmail string) ([]domain.Booking, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"buyer_email": buyerEmail})
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bookingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}

	bookings := make([]domain.Booking, 0, len(docs))
	for _, d := range docs {
		bookings = append(bookings, d.toDomain())
	}
	return bookings, nil
}

// UpdateStatus reads the document as it was before the write so that
// modifiedCount stays exact for no-op updates.
func (r *MongoBookingRepository) UpdateStatus(ctx context.Context, id, buyerEmail string, status domain.BookingStatus) (*domain.UpdateResult, *domain.Booking, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, nil, err
	}
	filter := bson.M{"_id": oid}
	if buyerEmail != "" {
		filter["buyer_email"] = buyerEmail
	}

	var before bookingDocument
	err = r.coll.FindOneAndUpdate(ctx, filter,
		bson.M{"$set": bson.M{"status": status}},
		options.FindOneAndUpdate().SetReturnDocument(options.Before),
	).Decode(&before)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &domain.UpdateResult{Acknowledged: true}, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("update booking status: %w", err)
	}

	res := &domain.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if before.Status != string(status) {
		res.ModifiedCount = 1
	}
	updated := before.toDomain()
	updated.Status = status
	return res, &updated, nil
}

var _ BookingRepository = (*MongoBookingRepository)(nil)
