package intake

import (
	"time"

	"github.com/google/uuid"
)

// Submission statuses track review progress: submissions arrive pending, are
// marked reviewed by staff and converted once a patient record exists.
const (
	StatusPending   = "pending"
	StatusReviewed  = "reviewed"
	StatusConverted = "converted"
)

var validStatuses = map[string]bool{
	StatusPending:   true,
	StatusReviewed:  true,
	StatusConverted: true,
}

// Submission maps to the intake_submission table.
type Submission struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	Name           string     `db:"name" json:"name"`
	Email          string     `db:"email" json:"email"`
	Phone          *string    `db:"phone" json:"phone,omitempty"`
	DateOfBirth    *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Address        *string    `db:"address" json:"address,omitempty"`
	MedicalHistory *string    `db:"medical_history" json:"medical_history,omitempty"`
	Status         string     `db:"status" json:"status"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}
