package types

import "time"

// Course represents a coaching course offered by the institute.
type Course struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Duration    string    `json:"duration" db:"duration"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
