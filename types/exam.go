package types

import "time"

// Exam represents a scholarship or entrance exam conducted by the institute.
type Exam struct {
	// ID is the unique identifier of the exam.
	ID int `json:"id" db:"id"`

	// Title is the public name of the exam.
	Title string `json:"title" db:"title"`

	// Description contains the full exam announcement.
	Description string `json:"description" db:"description"`

	// Banner is an optional URL to the exam's banner image.
	Banner string `json:"banner,omitempty" db:"banner"`

	// RegistrationStartDate and RegistrationEndDate bound the window in
	// which candidates may register.
	RegistrationStartDate time.Time `json:"registration_start_date" db:"registration_start_date"`
	RegistrationEndDate   time.Time `json:"registration_end_date" db:"registration_end_date"`

	// ExamFee is the registration fee in rupees.
	ExamFee float64 `json:"exam_fee" db:"exam_fee"`

	// IsRegistrationOpen is the operator-controlled toggle. Effective
	// openness also requires the current time to fall inside the
	// registration window; see RegistrationOpen.
	IsRegistrationOpen bool `json:"is_registration_open" db:"is_registration_open"`

	// ResultPublished indicates whether results are available.
	ResultPublished bool `json:"result_published" db:"result_published"`

	// ResultLink and AnswerBookLink are optional URLs published with
	// the results.
	ResultLink     string `json:"result_link,omitempty" db:"result_link"`
	AnswerBookLink string `json:"answer_book_link,omitempty" db:"answer_book_link"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// RegistrationOpen reports whether registration is effectively open at t:
// the operator toggle is on and t falls inside the registration window.
func (e Exam) RegistrationOpen(t time.Time) bool {
	if !e.IsRegistrationOpen {
		return false
	}
	return !t.Before(e.RegistrationStartDate) && !t.After(e.RegistrationEndDate)
}
