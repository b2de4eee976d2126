package bookings

import "time"

type Booking struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PlaceName string    `json:"place_name" validate:"required"`
	City      string    `json:"city" validate:"required"`
	CheckIn   time.Time `json:"check_in"`
	CheckOut  time.Time `json:"check_out"`
	Guests    int       `json:"guests" validate:"gte=1"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}
