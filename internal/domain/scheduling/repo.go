package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AppointmentRepository stores appointments. It also serves as the booking
// counter the availability engine consults, so both read the same rows.
type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	ListAll(ctx context.Context, limit, offset int) ([]*AppointmentDetail, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*AppointmentDetail, error)
	ListByDoctorRange(ctx context.Context, doctorID uuid.UUID, start, end time.Time) ([]*AppointmentDetail, error)

	CountActiveAt(ctx context.Context, doctorID uuid.UUID, date time.Time, timeLabel string) (int, error)
	CountActiveByTime(ctx context.Context, doctorID uuid.UUID, date time.Time) (map[string]int, error)
}
