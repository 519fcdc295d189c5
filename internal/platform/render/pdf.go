// Package render produces the PDF reports served by the export
// endpoints.
package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"hrdesk/internal/domain/payroll"
)

// PDFRenderer draws payroll reports with gofpdf. Implements
// payroll.ReportRenderer.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) RenderPayrollReport(generatedAt time.Time, rows []payroll.Record) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Payroll Report")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", generatedAt.Format("2006-01-02 15:04")))
	pdf.Ln(12)

	widths := []float64{38, 14, 14, 26, 22, 26, 30}
	headers := []string{"Employee", "Year", "Month", "Base", "Bonuses", "Deductions", "Net"}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, rec := range rows {
		cells := []string{
			rec.Employee,
			fmt.Sprintf("%d", rec.Year),
			fmt.Sprintf("%d", rec.Month),
			rec.BaseSalary.StringFixed(2),
			rec.Bonuses.StringFixed(2),
			rec.Deductions.StringFixed(2),
			rec.NetSalary.StringFixed(2),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 7, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(rows) == 0 {
		pdf.Cell(0, 8, "No payroll records.")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
