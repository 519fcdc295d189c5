package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNetSalary(t *testing.T) {
	base := decimal.RequireFromString("3000.00")
	bonuses := decimal.RequireFromString("200.00")
	deductions := decimal.RequireFromString("150.00")

	net := NetSalary(base, bonuses, deductions)
	if net.StringFixed(2) != "3050.00" {
		t.Fatalf("expected 3050.00, got %s", net.StringFixed(2))
	}
}

func TestNetSalaryExactDecimal(t *testing.T) {
	// 0.10 + 0.20 is the classic binary float trap; decimal must stay exact.
	base := decimal.RequireFromString("0.10")
	bonuses := decimal.RequireFromString("0.20")

	net := NetSalary(base, bonuses, decimal.Zero)
	if !net.Equal(decimal.RequireFromString("0.30")) {
		t.Fatalf("expected exactly 0.30, got %s", net)
	}
}

func TestDecimalOr(t *testing.T) {
	fallback := decimal.RequireFromString("1234.56")

	cases := []struct {
		raw  string
		want string
	}{
		{"2000.00", "2000.00"},
		{"  750.25 ", "750.25"},
		{"", "1234.56"},
		{"not-a-number", "1234.56"},
		{"12,50", "1234.56"},
	}

	for _, tc := range cases {
		got := DecimalOr(tc.raw, fallback)
		if got.StringFixed(2) != tc.want {
			t.Fatalf("DecimalOr(%q) = %s, want %s", tc.raw, got.StringFixed(2), tc.want)
		}
	}
}
