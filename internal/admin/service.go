package admin

import (
	"context"
	"errors"
	"time"

	"backend-roamio/internal/db"
	"backend-roamio/internal/logging"
)

// UserSource lists accounts held by the identity provider.
type UserSource interface {
	Users(ctx context.Context) ([]IdentityUser, error)
}

type CityBookings struct {
	City  string `json:"city"`
	Count int64  `json:"count"`
}

type Service struct {
	db    db.Querier
	users UserSource
	now   func() time.Time
}

func NewService(db db.Querier, users UserSource) *Service {
	return &Service{db: db, users: users, now: time.Now}
}

// UserCount is the number of provider accounts with an id. An unreachable
// provider counts as zero.
func (s *Service) UserCount(ctx context.Context) int {
	n := 0
	for _, u := range s.providerUsers(ctx) {
		if u.ID != "" {
			n++
		}
	}
	return n
}

// NewUsersThisMonth counts provider accounts created in the current UTC
// calendar month.
func (s *Service) NewUsersThisMonth(ctx context.Context) int {
	now := s.now().UTC()
	n := 0
	for _, u := range s.providerUsers(ctx) {
		if u.CreatedAt.IsZero() {
			continue
		}
		if u.CreatedAt.Year() == now.Year() && u.CreatedAt.Month() == now.Month() {
			n++
		}
	}
	return n
}

func (s *Service) TotalBookings(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&n)
	return n, err
}

func (s *Service) BookingsPerCity(ctx context.Context) ([]CityBookings, error) {
	rows, err := s.db.Query(ctx, `
		SELECT COALESCE(city,''), COUNT(*)
		FROM bookings
		GROUP BY city
		ORDER BY city
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []CityBookings{}
	for rows.Next() {
		var cb CityBookings
		if err := rows.Scan(&cb.City, &cb.Count); err != nil {
			return nil, err
		}
		out = append(out, cb)
	}
	return out, rows.Err()
}

func (s *Service) providerUsers(ctx context.Context) []IdentityUser {
	if s.users == nil {
		return nil
	}
	users, err := s.users.Users(ctx)
	if errors.Is(err, ErrNoAPIKey) {
		logging.Warn().Msg("identity provider key missing, reporting zero users")
		return nil
	}
	if err != nil {
		logging.Error().Err(err).Msg("identity provider request failed")
		return nil
	}
	return users
}
