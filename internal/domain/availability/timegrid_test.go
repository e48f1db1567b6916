package availability

import (
	"errors"
	"testing"
	"time"
)

func TestDayOfWeek(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2025-01-06", 1}, // Monday
		{"2025-01-07", 2},
		{"2025-01-08", 3},
		{"2025-01-09", 4},
		{"2025-01-10", 5},
		{"2025-01-11", 6}, // Saturday
		{"2025-01-12", 7}, // Sunday maps to 7, not 0
	}
	for _, tt := range tests {
		d, err := time.Parse(DateLayout, tt.date)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := DayOfWeek(d); got != tt.want {
			t.Errorf("DayOfWeek(%s) = %d, want %d", tt.date, got, tt.want)
		}
	}
}

func TestTimeToMinutes(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"12:30", 750},
		{"23:59", 1439},
	}
	for _, tt := range tests {
		got, err := TimeToMinutes(tt.in)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("TimeToMinutes(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTimeToMinutes_Invalid(t *testing.T) {
	for _, in := range []string{"", "9am", "25:00", "12:60", "12", "12:3x", "-1:00"} {
		if _, err := TimeToMinutes(in); err == nil {
			t.Errorf("expected error for %q", in)
		} else if !errors.Is(err, ErrInvalidTime) {
			t.Errorf("expected ErrInvalidTime for %q, got %v", in, err)
		}
	}
}

func TestParseDate_Invalid(t *testing.T) {
	if _, err := ParseDate("01/06/2025"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func strPtr(s string) *string { return &s }

func TestSlotGrid_NoBreak(t *testing.T) {
	slots, err := SlotGrid("09:00", "11:00", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"09:00", "09:30", "10:00", "10:30"}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d: %v", len(want), len(slots), slots)
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Errorf("slot %d = %q, want %q", i, slots[i], want[i])
		}
	}
}

func TestSlotGrid_ExcludesBreakHours(t *testing.T) {
	slots, err := SlotGrid("09:00", "17:00", strPtr("12:00"), strPtr("13:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range slots {
		if s == "12:00" || s == "12:30" {
			t.Errorf("slot %q falls inside break", s)
		}
	}
	found := false
	for _, s := range slots {
		if s == "13:00" {
			found = true
		}
	}
	if !found {
		t.Error("expected 13:00 immediately after break")
	}
}

func TestSlotGrid_EndHourExcluded(t *testing.T) {
	slots, err := SlotGrid("09:00", "17:00", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range slots {
		if s == "17:00" || s == "17:30" {
			t.Errorf("slot %q is outside working hours", s)
		}
	}
	if slots[len(slots)-1] != "16:30" {
		t.Errorf("expected last slot 16:30, got %q", slots[len(slots)-1])
	}
}

func TestSlotGrid_SubHourBreakIgnored(t *testing.T) {
	// Break exclusion is hour-granular: a 12:15-12:45 break resolves to the
	// empty hour range [12, 12) and excludes nothing.
	slots, err := SlotGrid("12:00", "13:00", strPtr("12:15"), strPtr("12:45"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 2 || slots[0] != "12:00" || slots[1] != "12:30" {
		t.Errorf("expected [12:00 12:30], got %v", slots)
	}
}

func TestSlotGrid_MidnightBreakStart(t *testing.T) {
	// A break starting at 00:00 must still be honored.
	slots, err := SlotGrid("00:00", "02:00", strPtr("00:00"), strPtr("01:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range slots {
		if s == "00:00" || s == "00:30" {
			t.Errorf("slot %q falls inside break", s)
		}
	}
}
