package catalog

import "strings"

// Kind is one of the three searchable entity categories.
type Kind string

const (
	Lodging    Kind = "Lodging"
	Dining     Kind = "Dining"
	Attraction Kind = "Attraction"
)

// Kinds lists every kind in result order.
var Kinds = []Kind{Lodging, Dining, Attraction}

// Table returns the backing table for k.
func (k Kind) Table() string {
	switch k {
	case Lodging:
		return "hotels"
	case Dining:
		return "restaurants"
	case Attraction:
		return "attractions"
	}
	return ""
}

// Route is the URL segment the kind is listed under.
func (k Kind) Route() string {
	return "/" + k.Table()
}

// ParseKind accepts both the public route names (hotel, restaurant,
// attraction) and the category names, case-insensitively.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hotel", "hotels", "lodging":
		return Lodging, true
	case "restaurant", "restaurants", "dining":
		return Dining, true
	case "attraction", "attractions":
		return Attraction, true
	}
	return "", false
}

// Entity is the shared shape of hotels, restaurants and attractions.
type Entity struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" validate:"required"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
	ImageURL    string `json:"image_url"`
}
