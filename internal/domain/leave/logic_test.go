package leave

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusPending, false},
		{StatusApproved, StatusRejected, false},
		{StatusApproved, StatusPending, false},
		{StatusRejected, StatusApproved, false},
		{StatusRejected, StatusPending, false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Fatalf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestValidType(t *testing.T) {
	for _, leaveType := range []string{TypeSick, TypeAnnual, TypeEmergency} {
		if !ValidType(leaveType) {
			t.Fatalf("expected %s to be a valid type", leaveType)
		}
	}
	if ValidType("Sabbatical") {
		t.Fatal("unexpected valid type")
	}
}

func TestNormalizeType(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"sick", TypeSick},
		{"SICK", TypeSick},
		{" annual ", TypeAnnual},
		{"Emergency", TypeEmergency},
		{"Sabbatical", "Sabbatical"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeType(tc.in); got != tc.want {
			t.Fatalf("NormalizeType(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
