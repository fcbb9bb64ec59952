package types

import "time"

// Faculty represents a teacher profile shown on the site.
type Faculty struct {
	ID            int       `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Subject       string    `json:"subject" db:"subject"`
	Qualification string    `json:"qualification" db:"qualification"`
	Bio           string    `json:"bio" db:"bio"`
	Photo         string    `json:"photo" db:"photo"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
