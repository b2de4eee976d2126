package wishlist

import (
	"time"

	"backend-roamio/internal/places"
)

// Entry is one bookmark row.
type Entry struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	PlaceID   int64     `json:"place_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Item is a bookmarked place as returned to the client.
type Item struct {
	places.Place
	WishlistID int64     `json:"wishlist_id"`
	AddedAt    time.Time `json:"added_at"`
}
