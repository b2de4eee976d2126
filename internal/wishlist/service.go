package wishlist

import (
	"context"
	"errors"

	"backend-roamio/internal/db"
	"backend-roamio/internal/places"

	"github.com/jackc/pgx/v5"
)

var ErrNotInWishlist = errors.New("item not found in wishlist")

// PlaceLookup resolves the place a bookmark points at.
type PlaceLookup interface {
	Get(ctx context.Context, id int64) (places.Place, error)
}

type Service struct {
	db     db.Querier
	places PlaceLookup
}

func NewService(db db.Querier, places PlaceLookup) *Service {
	return &Service{db: db, places: places}
}

// Add bookmarks placeID for userID. An existing bookmark is returned as is.
// The lookup and the insert are separate statements, so two concurrent adds
// can still both insert unless wishlists carries a unique (user_id, place_id).
func (s *Service) Add(ctx context.Context, userID string, placeID int64) (Entry, error) {
	if _, err := s.places.Get(ctx, placeID); err != nil {
		return Entry{}, err
	}

	entry := Entry{UserID: userID, PlaceID: placeID}
	err := s.db.QueryRow(ctx, `
		SELECT id, created_at FROM wishlists
		WHERE user_id=$1 AND place_id=$2
	`, userID, placeID).Scan(&entry.ID, &entry.CreatedAt)
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, err
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO wishlists (user_id, place_id)
		VALUES ($1,$2)
		RETURNING id, created_at
	`, userID, placeID)
	if err := row.Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (s *Service) Remove(ctx context.Context, userID string, placeID int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM wishlists WHERE user_id=$1 AND place_id=$2`, userID, placeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotInWishlist
	}
	return nil
}

func (s *Service) Contains(ctx context.Context, userID string, placeID int64) (bool, error) {
	var ok bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM wishlists WHERE user_id=$1 AND place_id=$2)
	`, userID, placeID).Scan(&ok)
	return ok, err
}

// List returns a user's bookmarked places, most recently added first.
func (s *Service) List(ctx context.Context, userID string) ([]Item, error) {
	rows, err := s.db.Query(ctx, `
		SELECT w.id, w.created_at, p.id, p.name, COALESCE(p.location,''), COALESCE(p.type,''),
		       COALESCE(p.description,''), COALESCE(p.tags,''), COALESCE(p.image_url,''), p.created_at
		FROM wishlists w
		JOIN places p ON p.id = w.place_id
		WHERE w.user_id=$1
		ORDER BY w.created_at DESC, w.id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.WishlistID, &it.AddedAt, &it.ID, &it.Name, &it.Location, &it.Type,
			&it.Description, &it.Tags, &it.ImageURL, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
