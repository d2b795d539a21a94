// Booking store backed by PostgreSQL.
package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pinkauto/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Insert(ctx context.Context, b *Booking) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO bookings (
            id, rider_id, pickup_address, drop_address,
            pickup_lat, pickup_lng, drop_lat, drop_lng,
            pickup_hour, pickup_minute, days,
            distance_km, is_surge, per_ride_fare, total_weekly_fare,
            start_date, is_next_week, payment_order_id, status, created_at
        ) VALUES (
            $1, $2, $3, $4,
            $5, $6, $7, $8,
            $9, $10, $11,
            $12, $13, $14, $15,
            $16, $17, $18, $19, $20
        )`,
		string(b.ID),
		string(b.RiderID),
		b.PickupAddress,
		b.DropAddress,
		b.Pickup.Lat, b.Pickup.Lng,
		b.Drop.Lat, b.Drop.Lng,
		b.PickupTime.Hour, b.PickupTime.Minute,
		daysToInts(b.Days),
		b.DistanceKm,
		b.Fare.IsSurgePricing,
		b.Fare.PerRideFare,
		b.Fare.TotalWeeklyFare,
		b.StartDate,
		b.IsNextWeek,
		b.PaymentOrderID,
		string(b.Status),
		b.CreatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Booking, error) {
	return s.scanOne(s.db.QueryRow(ctx, selectBooking+` WHERE id = $1`, string(id)))
}

func (s *Store) UpdateStatus(ctx context.Context, id types.ID, from, to Status, at time.Time) (bool, error) {
	tag, err := s.db.Exec(ctx, `
        UPDATE bookings
        SET status = $1,
            confirmed_at = CASE WHEN $1 = 'confirmed' THEN $2 ELSE confirmed_at END,
            cancelled_at = CASE WHEN $1 = 'cancelled' THEN $2 ELSE cancelled_at END
        WHERE id = $3 AND status = $4`,
		string(to), at, string(id), string(from),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) AttachPayment(ctx context.Context, id types.ID, paymentID string) error {
	_, err := s.db.Exec(ctx, `
        UPDATE bookings SET payment_id = $1 WHERE id = $2`,
		paymentID, string(id),
	)
	return err
}

func (s *Store) ListByRider(ctx context.Context, riderID types.ID) ([]*Booking, error) {
	rows, err := s.db.Query(ctx, selectBooking+`
        WHERE rider_id = $1
        ORDER BY created_at DESC`, string(riderID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Booking
	for rows.Next() {
		b, err := s.scanOne(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

const selectBooking = `
        SELECT id, rider_id, pickup_address, drop_address,
               pickup_lat, pickup_lng, drop_lat, drop_lng,
               pickup_hour, pickup_minute, days,
               distance_km, is_surge, per_ride_fare, total_weekly_fare,
               start_date, is_next_week, payment_order_id, payment_id,
               status, created_at, confirmed_at, cancelled_at
        FROM bookings`

func (s *Store) scanOne(row pgx.Row) (*Booking, error) {
	var b Booking
	var dayInts []int32
	var paymentID sql.NullString
	var confirmedAt, cancelledAt sql.NullTime

	err := row.Scan(
		&b.ID, &b.RiderID, &b.PickupAddress, &b.DropAddress,
		&b.Pickup.Lat, &b.Pickup.Lng, &b.Drop.Lat, &b.Drop.Lng,
		&b.PickupTime.Hour, &b.PickupTime.Minute, &dayInts,
		&b.DistanceKm, &b.Fare.IsSurgePricing, &b.Fare.PerRideFare, &b.Fare.TotalWeeklyFare,
		&b.StartDate, &b.IsNextWeek, &b.PaymentOrderID, &paymentID,
		&b.Status, &b.CreatedAt, &confirmedAt, &cancelledAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	b.Days = intsToDays(dayInts)
	b.Fare.DistanceKm = b.DistanceKm
	b.Fare.NumberOfDays = len(b.Days)
	if paymentID.Valid {
		b.PaymentID = paymentID.String
	}
	if confirmedAt.Valid {
		t := confirmedAt.Time
		b.ConfirmedAt = &t
	}
	if cancelledAt.Valid {
		t := cancelledAt.Time
		b.CancelledAt = &t
	}
	return &b, nil
}

func daysToInts(days []time.Weekday) []int32 {
	out := make([]int32, len(days))
	for i, d := range days {
		out[i] = int32(d)
	}
	return out
}

func intsToDays(ints []int32) []time.Weekday {
	out := make([]time.Weekday, len(ints))
	for i, v := range ints {
		out[i] = time.Weekday(v)
	}
	return out
}
