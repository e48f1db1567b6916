package availability

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RuleRepository stores the weekly availability rules.
type RuleRepository interface {
	GetByDoctorDay(ctx context.Context, doctorID uuid.UUID, dayOfWeek int) (*Rule, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Rule, error)
	ReplaceForDoctor(ctx context.Context, doctorID uuid.UUID, rules []*Rule) error
}

// TimeOffRepository stores time-off date ranges.
type TimeOffRepository interface {
	Covering(ctx context.Context, doctorID uuid.UUID, date time.Time) (*TimeOff, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*TimeOff, error)
	Create(ctx context.Context, t *TimeOff) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BookingCounter reports active (non-cancelled) booking counts. The
// appointment store implements it; both the single-slot check and the slot
// enumerator consult the same counts.
type BookingCounter interface {
	CountActiveAt(ctx context.Context, doctorID uuid.UUID, date time.Time, timeLabel string) (int, error)
	CountActiveByTime(ctx context.Context, doctorID uuid.UUID, date time.Time) (map[string]int, error)
}
