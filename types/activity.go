package types

import "time"

// Activity represents an institute event such as a sports day,
// academic workshop, or cultural program.
type Activity struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`

	// Images holds URLs of photos from the activity. Uploads are handled
	// outside this service; only the URLs are stored.
	Images []string `json:"images" db:"images"`

	// Date is when the activity took place.
	Date time.Time `json:"date" db:"date"`

	// Type is a free-form category, e.g. "Sports", "Academic", "Cultural".
	Type string `json:"type,omitempty" db:"type"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
