package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"hrdesk/internal/domain/payroll"
)

func TestRenderPayrollReport(t *testing.T) {
	rows := []payroll.Record{
		{
			Employee:   "jdoe",
			Year:       2025,
			Month:      6,
			BaseSalary: decimal.RequireFromString("3000.00"),
			Bonuses:    decimal.RequireFromString("200.00"),
			Deductions: decimal.RequireFromString("150.00"),
			NetSalary:  decimal.RequireFromString("3050.00"),
		},
	}

	out, err := NewPDFRenderer().RenderPayrollReport(time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC), rows)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatal("output is not a PDF document")
	}
}

func TestRenderPayrollReportEmpty(t *testing.T) {
	out, err := NewPDFRenderer().RenderPayrollReport(time.Now(), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected a document even with no rows")
	}
}
