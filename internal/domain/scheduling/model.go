package scheduling

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinic/clinic/internal/domain/availability"
)

// Appointment statuses. Appointments are never hard-deleted; cancellation is
// a status transition that frees the slot.
const (
	StatusScheduled  = "Scheduled"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusCancelled  = "Cancelled"
)

var validAppointmentStatuses = map[string]bool{
	StatusScheduled:  true,
	StatusInProgress: true,
	StatusCompleted:  true,
	StatusCancelled:  true,
}

// Appointment maps to the appointment table. Date and Time are stored
// separately; Time is the "HH:MM" slot label the availability engine works in.
type Appointment struct {
	ID              uuid.UUID `db:"id" json:"id"`
	PatientID       uuid.UUID `db:"patient_id" json:"patient_id"`
	DoctorID        uuid.UUID `db:"doctor_id" json:"doctor_id"`
	Date            time.Time `db:"appointment_date" json:"appointment_date"`
	Time            string    `db:"appointment_time" json:"appointment_time"`
	Type            string    `db:"appointment_type" json:"appointment_type"`
	Status          string    `db:"status" json:"status"`
	Notes           *string   `db:"notes" json:"notes,omitempty"`
	DurationMinutes *int      `db:"duration_minutes" json:"duration_minutes,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// BillingInfo is the payment summary joined from billing_record.
type BillingInfo struct {
	Amount                *float64 `json:"amount"`
	InsuranceCoverage     *float64 `json:"insurance_coverage"`
	Status                *string  `json:"status"`
	PatientResponsibility float64  `json:"patient_responsibility"`
}

// Responsibility computes the patient's share, treating absent figures as 0.
func (b *BillingInfo) Responsibility() float64 {
	var amount, coverage float64
	if b.Amount != nil {
		amount = *b.Amount
	}
	if b.InsuranceCoverage != nil {
		coverage = *b.InsuranceCoverage
	}
	return amount - coverage
}

// AppointmentDetail is an appointment joined with patient identity and
// billing, as rendered in staff and doctor views.
type AppointmentDetail struct {
	Appointment
	PatientName  *string      `json:"patient_name"`
	PatientPhone *string      `json:"patient_phone,omitempty"`
	PatientEmail *string      `json:"patient_email,omitempty"`
	Billing      *BillingInfo `json:"payment_info,omitempty"`
}

// GroupedAppointments buckets a doctor's appointments by status.
type GroupedAppointments struct {
	Scheduled  []*AppointmentDetail `json:"scheduled"`
	InProgress []*AppointmentDetail `json:"inProgress"`
	Completed  []*AppointmentDetail `json:"completed"`
	Cancelled  []*AppointmentDetail `json:"cancelled"`
}

// ScheduleStats aggregates a doctor's date range.
type ScheduleStats struct {
	TotalAppointments          int     `json:"total_appointments"`
	ScheduledAppointments      int     `json:"scheduled_appointments"`
	InProgressAppointments     int     `json:"in_progress_appointments"`
	CompletedAppointments      int     `json:"completed_appointments"`
	CancelledAppointments      int     `json:"cancelled_appointments"`
	TotalBilled                float64 `json:"total_billed"`
	TotalInsuranceCoverage     float64 `json:"total_insurance_coverage"`
	TotalPatientResponsibility float64 `json:"total_patient_responsibility"`
}

// DoctorSchedule is the combined doctor view: grouped appointments plus the
// per-date availability overview for every day in range.
type DoctorSchedule struct {
	StartDate          string                               `json:"startDate"`
	EndDate            string                               `json:"endDate"`
	Appointments       GroupedAppointments                  `json:"appointments"`
	AvailabilityByDate map[string]*availability.DayOverview `json:"availabilityByDate"`
	Stats              ScheduleStats                        `json:"stats"`
}
