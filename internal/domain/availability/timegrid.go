package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// DayOfWeek converts a calendar date to the storage weekday numbering,
// 1..7 with Monday=1 and Sunday=7. This is the only place the conversion
// from Go's Sunday=0 weekday lives.
func DayOfWeek(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// ParseDate parses a "YYYY-MM-DD" date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// TimeToMinutes converts an "HH:MM" label to minutes since midnight.
func TimeToMinutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return h*60 + m, nil
}

// SlotGrid emits the ":00" and ":30" labels for each hour in
// [startHour, endHour), skipping hours in [breakStartHour, breakEndHour).
// The break exclusion is deliberately hour-granular: sub-hour break minutes
// are ignored, matching the long-standing booking behavior clients rely on.
func SlotGrid(startTime, endTime string, breakStart, breakEnd *string) ([]string, error) {
	start, err := TimeToMinutes(startTime)
	if err != nil {
		return nil, err
	}
	end, err := TimeToMinutes(endTime)
	if err != nil {
		return nil, err
	}

	breakStartHour, breakEndHour := -1, -1
	if breakStart != nil && breakEnd != nil {
		bs, err := TimeToMinutes(*breakStart)
		if err != nil {
			return nil, err
		}
		be, err := TimeToMinutes(*breakEnd)
		if err != nil {
			return nil, err
		}
		breakStartHour, breakEndHour = bs/60, be/60
	}

	var slots []string
	for hour := start / 60; hour < end/60; hour++ {
		if breakStartHour >= 0 && hour >= breakStartHour && hour < breakEndHour {
			continue
		}
		slots = append(slots, fmt.Sprintf("%02d:00", hour), fmt.Sprintf("%02d:30", hour))
	}
	return slots, nil
}
