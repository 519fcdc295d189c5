package payroll

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"
	"time"
)

var csvHeader = []string{"Employee", "Year", "Month", "BaseSalary", "Bonuses", "Deductions", "NetSalary", "Remarks"}

// ReportRenderer turns the payroll snapshot into a formatted document. The
// workflow layer stays decoupled from the rendering technology; a failure is
// surfaced as an export error, never retried.
type ReportRenderer interface {
	RenderPayrollReport(generatedAt time.Time, rows []Record) ([]byte, error)
}

// BuildCSV serializes the snapshot sorted by (year, month) ascending, UTF-8
// with a byte-order mark so spreadsheet tools detect the encoding.
func BuildCSV(records []Record) ([]byte, error) {
	rows := make([]Record, len(records))
	copy(rows, records)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		return rows[i].Month < rows[j].Month
	})

	var buf bytes.Buffer
	buf.WriteString("\uFEFF")

	writer := csv.NewWriter(&buf)
	if err := writer.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, rec := range rows {
		row := []string{
			rec.Employee,
			strconv.Itoa(rec.Year),
			strconv.Itoa(rec.Month),
			rec.BaseSalary.StringFixed(2),
			rec.Bonuses.StringFixed(2),
			rec.Deductions.StringFixed(2),
			rec.NetSalary.StringFixed(2),
			rec.Remarks,
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SortForReport orders the snapshot by employee handle, the order the PDF
// report is rendered in.
func SortForReport(records []Record) []Record {
	rows := make([]Record, len(records))
	copy(rows, records)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Employee < rows[j].Employee
	})
	return rows
}
