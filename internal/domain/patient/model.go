package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table.
type Patient struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	Name              string     `db:"name" json:"name"`
	Email             string     `db:"email" json:"email"`
	Phone             *string    `db:"phone" json:"phone,omitempty"`
	DateOfBirth       *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Address           *string    `db:"address" json:"address,omitempty"`
	InsuranceProvider *string    `db:"insurance_provider" json:"insurance_provider,omitempty"`
	InsuranceID       *string    `db:"insurance_id" json:"insurance_id,omitempty"`
	PrimaryDoctorID   *uuid.UUID `db:"primary_doctor_id" json:"primary_doctor_id,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
}
