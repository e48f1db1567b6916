package availability

import "errors"

var (
	// ErrInvalidTime is returned for times that are not "HH:MM".
	ErrInvalidTime = errors.New("invalid time, expected HH:MM")

	// ErrInvalidDate is returned for dates that are not "YYYY-MM-DD".
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrMissingField marks a request missing a required input. Handlers map
	// it to HTTP 400 alongside the parse errors above.
	ErrMissingField = errors.New("missing required field")
)

// Unavailability reasons returned by CheckAvailability. These are part of the
// API contract and must not be reworded.
const (
	ReasonDayOff      = "Doctor is not available on this day"
	ReasonOutsideWork = "Requested time is outside doctor's working hours"
	ReasonBreak       = "Requested time is during doctor's break"
	ReasonTimeOff     = "Doctor is on time off during this period"
	ReasonSlotFull    = "No available slots at this time"
)
