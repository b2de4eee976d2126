package bookings

import (
	"context"
	"errors"
	"time"

	"backend-roamio/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound     = errors.New("booking not found")
	ErrInvalidDates = errors.New("check_out must not be before check_in")
)

const bookingColumns = `id, user_id, place_name, city, check_in, check_out, guests, COALESCE(note,''), created_at`

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, input Booking) (Booking, error) {
	if err := checkDates(input); err != nil {
		return Booking{}, err
	}
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO bookings (id, user_id, place_name, city, check_in, check_out, guests, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at
	`, input.ID, input.UserID, input.PlaceName, input.City, timePtr(input.CheckIn), timePtr(input.CheckOut), input.Guests, input.Note)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Booking{}, err
	}
	return input, nil
}

func (s *Service) Get(ctx context.Context, id string) (Booking, error) {
	if !validID(id) {
		return Booking{}, ErrNotFound
	}
	row := s.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Booking{}, ErrNotFound
	}
	return b, err
}

// Update applies the non-zero fields of patch to a booking owned by userID.
func (s *Service) Update(ctx context.Context, id, userID string, patch Booking) (Booking, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return Booking{}, err
	}
	if b.UserID != userID {
		return Booking{}, ErrNotFound
	}
	if !patch.CheckIn.IsZero() {
		b.CheckIn = patch.CheckIn
	}
	if !patch.CheckOut.IsZero() {
		b.CheckOut = patch.CheckOut
	}
	if patch.Guests > 0 {
		b.Guests = patch.Guests
	}
	if patch.Note != "" {
		b.Note = patch.Note
	}
	if err := checkDates(b); err != nil {
		return Booking{}, err
	}

	_, err = s.db.Exec(ctx, `
		UPDATE bookings
		SET check_in=$2, check_out=$3, guests=$4, note=$5
		WHERE id=$1
	`, b.ID, timePtr(b.CheckIn), timePtr(b.CheckOut), b.Guests, b.Note)
	if err != nil {
		return Booking{}, err
	}
	return b, nil
}

func (s *Service) Cancel(ctx context.Context, id, userID string) error {
	if !validID(id) {
		return ErrNotFound
	}
	tag, err := s.db.Exec(ctx, `DELETE FROM bookings WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ForUser lists a user's bookings, soonest stay first.
func (s *Service) ForUser(ctx context.Context, userID string) ([]Booking, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings WHERE user_id=$1
		ORDER BY check_in NULLS LAST, created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanBooking(row pgx.Row) (Booking, error) {
	var b Booking
	var checkIn, checkOut *time.Time
	if err := row.Scan(&b.ID, &b.UserID, &b.PlaceName, &b.City, &checkIn, &checkOut, &b.Guests, &b.Note, &b.CreatedAt); err != nil {
		return Booking{}, err
	}
	if checkIn != nil {
		b.CheckIn = *checkIn
	}
	if checkOut != nil {
		b.CheckOut = *checkOut
	}
	return b, nil
}

func checkDates(b Booking) error {
	if !b.CheckIn.IsZero() && !b.CheckOut.IsZero() && b.CheckOut.Before(b.CheckIn) {
		return ErrInvalidDates
	}
	return nil
}

// validID reports whether id can name a booking. Anything else would be
// rejected by the uuid column.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
