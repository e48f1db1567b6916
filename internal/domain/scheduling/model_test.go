package scheduling

import "testing"

func floatPtr(f float64) *float64 { return &f }

func TestBillingInfo_Responsibility(t *testing.T) {
	tests := []struct {
		name    string
		billing BillingInfo
		want    float64
	}{
		{"full figures", BillingInfo{Amount: floatPtr(200), InsuranceCoverage: floatPtr(150)}, 50},
		{"no coverage", BillingInfo{Amount: floatPtr(80)}, 80},
		{"nothing billed", BillingInfo{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.billing.Responsibility(); got != tt.want {
				t.Errorf("Responsibility() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidAppointmentStatuses(t *testing.T) {
	for _, s := range []string{StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled} {
		if !validAppointmentStatuses[s] {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if validAppointmentStatuses["scheduled"] {
		t.Error("status matching must be case sensitive")
	}
}
