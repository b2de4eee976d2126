package places

import "time"

type Place struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" form:"name" validate:"required"`
	Location    string    `json:"location" form:"location"`
	Type        string    `json:"type" form:"type"`
	Description string    `json:"description" form:"description"`
	Tags        string    `json:"tags" form:"tags"`
	ImageURL    string    `json:"image_url" form:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}
