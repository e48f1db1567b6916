package availability

import (
	"time"

	"github.com/google/uuid"
)

// Rule maps to the doctor_availability table: one row per weekday a doctor
// sees patients. Times are "HH:MM" strings; day_of_week runs 1..7 with
// Monday=1 and Sunday=7.
type Rule struct {
	ID              uuid.UUID `db:"id" json:"id"`
	DoctorID        uuid.UUID `db:"doctor_id" json:"doctor_id"`
	DayOfWeek       int       `db:"day_of_week" json:"day_of_week"`
	StartTime       string    `db:"start_time" json:"start_time"`
	EndTime         string    `db:"end_time" json:"end_time"`
	BreakStart      *string   `db:"break_start" json:"break_start,omitempty"`
	BreakEnd        *string   `db:"break_end" json:"break_end,omitempty"`
	MaxAppointments int       `db:"max_appointments" json:"max_appointments"`
	IsAvailable     bool      `db:"is_available" json:"is_available"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Capacity returns the bookable count per slot, defaulting to 1 when the row
// predates the max_appointments column.
func (r *Rule) Capacity() int {
	if r.MaxAppointments <= 0 {
		return 1
	}
	return r.MaxAppointments
}

// Snapshot returns the client-facing view of the rule.
func (r *Rule) Snapshot() *RuleSnapshot {
	return &RuleSnapshot{
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		BreakStart:      r.BreakStart,
		BreakEnd:        r.BreakEnd,
		MaxAppointments: r.Capacity(),
	}
}

// RuleSnapshot is the availability payload returned by the check endpoint.
type RuleSnapshot struct {
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	BreakStart      *string `json:"breakStart"`
	BreakEnd        *string `json:"breakEnd"`
	MaxAppointments int     `json:"maxAppointments"`
}

// TimeOff maps to the doctor_time_off table. Both dates are inclusive; any
// covered date fully blocks booking regardless of the weekly rule.
type TimeOff struct {
	ID        uuid.UUID `db:"id" json:"id"`
	DoctorID  uuid.UUID `db:"doctor_id" json:"doctor_id"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	Reason    *string   `db:"reason" json:"reason,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// DayOverview is the per-date availability summary merged into doctor
// schedule views.
type DayOverview struct {
	Availability   *Rule    `json:"availability"`
	TimeOff        *TimeOff `json:"timeOff"`
	AvailableSlots []string `json:"availableSlots"`
}
