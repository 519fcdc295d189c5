package attendance

import (
	"testing"
	"time"
)

func TestWorkedHoursFullDay(t *testing.T) {
	in := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	out := time.Date(2025, 3, 10, 17, 30, 0, 0, time.UTC)

	hours := WorkedHours(in, out)
	if hours.StringFixed(2) != "8.50" {
		t.Fatalf("expected 8.50 hours, got %s", hours.StringFixed(2))
	}
}

func TestWorkedHoursRounding(t *testing.T) {
	in := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	out := time.Date(2025, 3, 10, 9, 20, 0, 0, time.UTC)

	// 20 minutes = 0.333... hours, rounds to 0.33.
	hours := WorkedHours(in, out)
	if hours.StringFixed(2) != "0.33" {
		t.Fatalf("expected 0.33 hours, got %s", hours.StringFixed(2))
	}

	out = time.Date(2025, 3, 10, 9, 40, 0, 0, time.UTC)
	hours = WorkedHours(in, out)
	if hours.StringFixed(2) != "0.67" {
		t.Fatalf("expected 0.67 hours, got %s", hours.StringFixed(2))
	}
}

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"late", StatusLate},
		{"PRESENT", StatusPresent},
		{" absent ", StatusAbsent},
		{"Sleeping", "Sleeping"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeStatus(tc.in); got != tc.want {
			t.Fatalf("NormalizeStatus(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWorkedHoursNegativeClampsToZero(t *testing.T) {
	in := time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)
	out := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	hours := WorkedHours(in, out)
	if !hours.IsZero() {
		t.Fatalf("expected 0 hours for inverted range, got %s", hours)
	}
}
