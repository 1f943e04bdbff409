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

type PGBookingRepository struct {
	db Executor
}

func NewPGBookingRepository(db Executor) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Insert(ctx context.Context, booking *domain.Booking) (*domain.InsertResult, error) {
	stored := *booking
	stored.ID = ""
	doc, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("encode booking: %w", err)
	}

	id := uuid.NewString()
	if _, err := r.db.Exec(ctx, `INSERT INTO bookings (id, doc) VALUES ($1, $2)`, id, doc); err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	return &domain.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (r *PGBookingRepository) ListByBuyer(ctx context.Context, buyerEmail string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT id::text, doc FROM bookings WHERE doc->>'buyer_email' = $1`, buyerEmail)
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var (
			id  string
			doc []byte
		)
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, err
		}
		var b domain.Booking
		if err := json.Unmarshal(doc, &b); err != nil {
			return nil, fmt.Errorf("decode booking %s: %w", id, err)
		}
		b.ID = id
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id, buyerEmail string, status domain.BookingStatus) (*domain.UpdateResult, *domain.Booking, error) {
	key, err := documentID(id)
	if err != nil {
		return nil, nil, err
	}

	var (
		doc       []byte
		oldStatus *string
	)
	err = r.db.QueryRow(ctx, `
        WITH prev AS (
            SELECT id, doc->>'status' AS old_status
            FROM bookings
            WHERE id = $1 AND ($3 = '' OR doc->>'buyer_email' = $3)
            FOR UPDATE
        )
        UPDATE bookings b
        SET doc = jsonb_set(b.doc, '{status}', to_jsonb($2::text))
        FROM prev
        WHERE b.id = prev.id
        RETURNING b.doc, prev.old_status
    `, key, string(status), buyerEmail).Scan(&doc, &oldStatus)
	if errors.Is(err, pgx.ErrNoRows) {
		return &domain.UpdateResult{Acknowledged: true}, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("update booking status: %w", err)
	}

	var updated domain.Booking
	if err := json.Unmarshal(doc, &updated); err != nil {
		return nil, nil, fmt.Errorf("decode booking %s: %w", key, err)
	}
	updated.ID = key

	res := &domain.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if oldStatus == nil || *oldStatus != string(status) {
		res.ModifiedCount = 1
	}
	return res, &updated, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
