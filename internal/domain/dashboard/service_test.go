package dashboard

import (
	"testing"

	"hrdesk/internal/domain/auth"
)

func TestKindForPriority(t *testing.T) {
	cases := []struct {
		name string
		user auth.UserContext
		want string
	}{
		{"superuser wins over any role", auth.UserContext{Superuser: true, Role: auth.RoleEmployee}, KindAdmin},
		{"hr manager", auth.UserContext{Role: auth.RoleHRManager}, KindHR},
		{"employee", auth.UserContext{Role: auth.RoleEmployee}, KindEmployee},
		{"finance", auth.UserContext{Role: auth.RoleFinance}, KindFinance},
		{"unknown role falls back to landing", auth.UserContext{Role: "contractor"}, KindLanding},
		{"no role", auth.UserContext{}, KindLanding},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := KindFor(tc.user); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}
