package types

import "time"

// Testimonial represents a student testimonial shown on the site.
type Testimonial struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Course    string    `json:"course" db:"course"`
	Feedback  string    `json:"feedback" db:"feedback"`
	Image     string    `json:"image,omitempty" db:"image"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
