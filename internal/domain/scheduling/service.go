package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinic/clinic/internal/domain/availability"
	"github.com/clinic/clinic/internal/platform/db"
)

type Service struct {
	appointments AppointmentRepository
	avail        *availability.Service
	tx           db.TxRunner
}

func NewService(appts AppointmentRepository, avail *availability.Service, tx db.TxRunner) *Service {
	return &Service{appointments: appts, avail: avail, tx: tx}
}

// Book creates an appointment. The availability engine runs first as an
// optimistic pre-check; the authoritative capacity count runs again inside a
// serializable transaction so two concurrent bookings cannot both take the
// last opening.
func (s *Service) Book(ctx context.Context, a *Appointment) error {
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("%w: patientId", availability.ErrMissingField)
	}
	if a.DoctorID == uuid.Nil {
		return fmt.Errorf("%w: doctorId", availability.ErrMissingField)
	}
	if a.Date.IsZero() {
		return fmt.Errorf("%w: date", availability.ErrMissingField)
	}
	if _, err := availability.TimeToMinutes(a.Time); err != nil {
		return err
	}
	if a.Type == "" {
		a.Type = "Consultation"
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if !validAppointmentStatuses[a.Status] {
		return fmt.Errorf("invalid appointment status: %s", a.Status)
	}

	check, err := s.avail.CheckAvailability(ctx, availability.CheckRequest{
		DoctorID: a.DoctorID,
		Date:     a.Date.Format(availability.DateLayout),
		Time:     a.Time,
	})
	if err != nil {
		return err
	}
	if !check.Available {
		return fmt.Errorf("%w: %s", ErrSlotTaken, check.Reason)
	}

	err = s.tx.RunSerializable(ctx, func(ctx context.Context) error {
		count, err := s.appointments.CountActiveAt(ctx, a.DoctorID, a.Date, a.Time)
		if err != nil {
			return err
		}
		if count >= check.Availability.MaxAppointments {
			return fmt.Errorf("%w: %s", ErrSlotTaken, availability.ReasonSlotFull)
		}
		return s.appointments.Create(ctx, a)
	})
	if db.IsSerializationFailure(err) {
		return fmt.Errorf("%w: %s", ErrSlotTaken, availability.ReasonSlotFull)
	}
	return err
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

func (s *Service) ListAppointments(ctx context.Context, limit, offset int) ([]*AppointmentDetail, int, error) {
	return s.appointments.ListAll(ctx, limit, offset)
}

func (s *Service) PatientAppointments(ctx context.Context, patientID uuid.UUID) ([]*AppointmentDetail, error) {
	if patientID == uuid.Nil {
		return nil, fmt.Errorf("%w: patientId", availability.ErrMissingField)
	}
	return s.appointments.ListByPatient(ctx, patientID)
}

// UpdateStatus moves an appointment through its lifecycle. Setting Cancelled
// frees the slot for new bookings.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !validAppointmentStatuses[status] {
		return fmt.Errorf("invalid appointment status: %s", status)
	}
	return s.appointments.UpdateStatus(ctx, id, status)
}

// DoctorSchedule assembles the doctor view for an inclusive date range:
// appointments grouped by status, per-date availability overviews and
// aggregate stats. Missing dates default to today.
func (s *Service) DoctorSchedule(ctx context.Context, doctorID uuid.UUID, startDate, endDate string) (*DoctorSchedule, error) {
	if doctorID == uuid.Nil {
		return nil, fmt.Errorf("%w: doctorId", availability.ErrMissingField)
	}
	if startDate == "" {
		startDate = time.Now().Format(availability.DateLayout)
	}
	if endDate == "" {
		endDate = startDate
	}
	start, err := availability.ParseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := availability.ParseDate(endDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("endDate cannot be before startDate")
	}

	items, err := s.appointments.ListByDoctorRange(ctx, doctorID, start, end)
	if err != nil {
		return nil, err
	}

	sched := &DoctorSchedule{
		StartDate: startDate,
		EndDate:   endDate,
		Appointments: GroupedAppointments{
			Scheduled:  []*AppointmentDetail{},
			InProgress: []*AppointmentDetail{},
			Completed:  []*AppointmentDetail{},
			Cancelled:  []*AppointmentDetail{},
		},
		AvailabilityByDate: make(map[string]*availability.DayOverview),
	}

	for _, d := range items {
		switch d.Status {
		case StatusScheduled:
			sched.Appointments.Scheduled = append(sched.Appointments.Scheduled, d)
		case StatusInProgress:
			sched.Appointments.InProgress = append(sched.Appointments.InProgress, d)
		case StatusCompleted:
			sched.Appointments.Completed = append(sched.Appointments.Completed, d)
		case StatusCancelled:
			sched.Appointments.Cancelled = append(sched.Appointments.Cancelled, d)
		}
		if d.Billing != nil {
			if d.Billing.Amount != nil {
				sched.Stats.TotalBilled += *d.Billing.Amount
			}
			if d.Billing.InsuranceCoverage != nil {
				sched.Stats.TotalInsuranceCoverage += *d.Billing.InsuranceCoverage
			}
			sched.Stats.TotalPatientResponsibility += d.Billing.Responsibility()
		}
	}
	sched.Stats.TotalAppointments = len(items)
	sched.Stats.ScheduledAppointments = len(sched.Appointments.Scheduled)
	sched.Stats.InProgressAppointments = len(sched.Appointments.InProgress)
	sched.Stats.CompletedAppointments = len(sched.Appointments.Completed)
	sched.Stats.CancelledAppointments = len(sched.Appointments.Cancelled)

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		overview, err := s.avail.DayOverview(ctx, doctorID, day)
		if err != nil {
			return nil, err
		}
		sched.AvailabilityByDate[day.Format(availability.DateLayout)] = overview
	}

	return sched, nil
}
