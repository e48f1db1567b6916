package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Service struct {
	rules    RuleRepository
	timeOff  TimeOffRepository
	bookings BookingCounter
}

func NewService(rules RuleRepository, timeOff TimeOffRepository, bookings BookingCounter) *Service {
	return &Service{rules: rules, timeOff: timeOff, bookings: bookings}
}

// CheckRequest is a single-slot availability question.
type CheckRequest struct {
	DoctorID uuid.UUID `json:"doctorId"`
	Date     string    `json:"date"`
	Time     string    `json:"time"`
}

// CheckResult is the outcome of a check. Unavailability is a normal business
// result carrying one of the fixed reason strings, not an error.
type CheckResult struct {
	Available    bool          `json:"available"`
	Reason       string        `json:"reason,omitempty"`
	Availability *RuleSnapshot `json:"availability,omitempty"`
}

// CheckAvailability evaluates the booking rules for one (doctor, date, time)
// triple. Checks run in a fixed order and short-circuit on the first failure.
func (s *Service) CheckAvailability(ctx context.Context, req CheckRequest) (*CheckResult, error) {
	if req.DoctorID == uuid.Nil {
		return nil, fmt.Errorf("%w: doctorId", ErrMissingField)
	}
	if req.Date == "" {
		return nil, fmt.Errorf("%w: date", ErrMissingField)
	}
	if req.Time == "" {
		return nil, fmt.Errorf("%w: time", ErrMissingField)
	}
	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	requested, err := TimeToMinutes(req.Time)
	if err != nil {
		return nil, err
	}

	rule, err := s.rules.GetByDoctorDay(ctx, req.DoctorID, DayOfWeek(date))
	if errors.Is(err, pgx.ErrNoRows) {
		return &CheckResult{Available: false, Reason: ReasonDayOff}, nil
	}
	if err != nil {
		return nil, err
	}
	if !rule.IsAvailable {
		return &CheckResult{Available: false, Reason: ReasonDayOff}, nil
	}

	start, err := TimeToMinutes(rule.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := TimeToMinutes(rule.EndTime)
	if err != nil {
		return nil, err
	}
	if requested < start || requested >= end {
		return &CheckResult{Available: false, Reason: ReasonOutsideWork}, nil
	}

	if rule.BreakStart != nil && rule.BreakEnd != nil {
		breakStart, err := TimeToMinutes(*rule.BreakStart)
		if err != nil {
			return nil, err
		}
		breakEnd, err := TimeToMinutes(*rule.BreakEnd)
		if err != nil {
			return nil, err
		}
		if requested >= breakStart && requested < breakEnd {
			return &CheckResult{Available: false, Reason: ReasonBreak}, nil
		}
	}

	off, err := s.timeOff.Covering(ctx, req.DoctorID, date)
	if err != nil {
		return nil, err
	}
	if off != nil {
		return &CheckResult{Available: false, Reason: ReasonTimeOff}, nil
	}

	count, err := s.bookings.CountActiveAt(ctx, req.DoctorID, date, req.Time)
	if err != nil {
		return nil, err
	}
	if count >= rule.Capacity() {
		return &CheckResult{Available: false, Reason: ReasonSlotFull}, nil
	}

	return &CheckResult{Available: true, Availability: rule.Snapshot()}, nil
}

// DaySlots enumerates the open "HH:MM" labels for a doctor's day, ascending.
// Empty when the doctor does not work that day or is on time off.
func (s *Service) DaySlots(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]string, error) {
	overview, err := s.DayOverview(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	return overview.AvailableSlots, nil
}

// DayOverview returns the rule, any time-off and the open slots for one date.
// The doctor schedule view embeds one of these per day in range.
func (s *Service) DayOverview(ctx context.Context, doctorID uuid.UUID, date time.Time) (*DayOverview, error) {
	if doctorID == uuid.Nil {
		return nil, fmt.Errorf("%w: doctorId", ErrMissingField)
	}

	overview := &DayOverview{AvailableSlots: []string{}}

	rule, err := s.rules.GetByDoctorDay(ctx, doctorID, DayOfWeek(date))
	if errors.Is(err, pgx.ErrNoRows) {
		return overview, nil
	}
	if err != nil {
		return nil, err
	}
	overview.Availability = rule

	off, err := s.timeOff.Covering(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	overview.TimeOff = off

	if !rule.IsAvailable || off != nil {
		return overview, nil
	}

	grid, err := SlotGrid(rule.StartTime, rule.EndTime, rule.BreakStart, rule.BreakEnd)
	if err != nil {
		return nil, err
	}
	counts, err := s.bookings.CountActiveByTime(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	for _, slot := range grid {
		if counts[slot] < rule.Capacity() {
			overview.AvailableSlots = append(overview.AvailableSlots, slot)
		}
	}
	return overview, nil
}

// -- Rule management --

func validateRule(r *Rule) error {
	if r.DayOfWeek < 1 || r.DayOfWeek > 7 {
		return fmt.Errorf("day_of_week must be between 1 and 7")
	}
	start, err := TimeToMinutes(r.StartTime)
	if err != nil {
		return err
	}
	end, err := TimeToMinutes(r.EndTime)
	if err != nil {
		return err
	}
	if start >= end {
		return fmt.Errorf("start_time must be before end_time")
	}
	if (r.BreakStart == nil) != (r.BreakEnd == nil) {
		return fmt.Errorf("break_start and break_end must be set together")
	}
	if r.BreakStart != nil {
		breakStart, err := TimeToMinutes(*r.BreakStart)
		if err != nil {
			return err
		}
		breakEnd, err := TimeToMinutes(*r.BreakEnd)
		if err != nil {
			return err
		}
		if breakStart >= breakEnd {
			return fmt.Errorf("break_start must be before break_end")
		}
		if breakStart < start || breakEnd > end {
			return fmt.Errorf("break must fall within working hours")
		}
	}
	if r.MaxAppointments < 0 {
		return fmt.Errorf("max_appointments cannot be negative")
	}
	return nil
}

func (s *Service) RulesForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Rule, error) {
	return s.rules.ListByDoctor(ctx, doctorID)
}

// SetRules replaces a doctor's weekly rule set. Duplicate weekdays are
// rejected before anything is written.
func (s *Service) SetRules(ctx context.Context, doctorID uuid.UUID, rules []*Rule) error {
	if doctorID == uuid.Nil {
		return fmt.Errorf("doctorId is required")
	}
	seen := make(map[int]bool, len(rules))
	for _, r := range rules {
		if err := validateRule(r); err != nil {
			return err
		}
		if seen[r.DayOfWeek] {
			return fmt.Errorf("duplicate rule for day_of_week %d", r.DayOfWeek)
		}
		seen[r.DayOfWeek] = true
	}
	return s.rules.ReplaceForDoctor(ctx, doctorID, rules)
}

// -- Time off management --

func (s *Service) TimeOffForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*TimeOff, error) {
	return s.timeOff.ListByDoctor(ctx, doctorID)
}

func (s *Service) AddTimeOff(ctx context.Context, t *TimeOff) error {
	if t.DoctorID == uuid.Nil {
		return fmt.Errorf("doctorId is required")
	}
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return fmt.Errorf("start_date and end_date are required")
	}
	if t.EndDate.Before(t.StartDate) {
		return fmt.Errorf("end_date cannot be before start_date")
	}
	return s.timeOff.Create(ctx, t)
}

func (s *Service) RemoveTimeOff(ctx context.Context, id uuid.UUID) error {
	return s.timeOff.Delete(ctx, id)
}
