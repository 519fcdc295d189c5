package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Service struct {
	Store    *Store
	Renderer ReportRenderer
}

func NewService(store *Store, renderer ReportRenderer) *Service {
	return &Service{Store: store, Renderer: renderer}
}

// Create registers the employee's payroll record for the current period.
// Refused when one already exists; one active record per employee.
func (s *Service) Create(ctx context.Context, input CreateInput, now time.Time) (*Record, error) {
	exists, err := s.Store.ExistsForProfile(ctx, input.ProfileID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrExists
	}

	base := DecimalOr(input.BaseSalary, decimal.Zero)
	bonuses := DecimalOr(input.Bonuses, decimal.Zero)
	deductions := DecimalOr(input.Deductions, decimal.Zero)

	rec := Record{
		ProfileID:  input.ProfileID,
		Month:      int(now.Month()),
		Year:       now.Year(),
		BaseSalary: base,
		Bonuses:    bonuses,
		Deductions: deductions,
		NetSalary:  NetSalary(base, bonuses, deductions),
		Remarks:    input.Remarks,
	}
	id, err := s.Store.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	return s.Store.Get(ctx, id)
}

// Update merges the submitted fields over the stored record. Unparsable
// monetary input keeps the previous value; net salary is recomputed on every
// write.
func (s *Service) Update(ctx context.Context, recordID string, input UpdateInput) (*Record, error) {
	rec, err := s.Store.Get(ctx, recordID)
	if err != nil {
		return nil, err
	}

	rec.BaseSalary = DecimalOr(input.BaseSalary, rec.BaseSalary)
	rec.Bonuses = DecimalOr(input.Bonuses, rec.Bonuses)
	rec.Deductions = DecimalOr(input.Deductions, rec.Deductions)
	if input.Remarks != "" {
		rec.Remarks = input.Remarks
	}
	rec.NetSalary = NetSalary(rec.BaseSalary, rec.Bonuses, rec.Deductions)

	if err := s.Store.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) Get(ctx context.Context, recordID string) (*Record, error) {
	return s.Store.Get(ctx, recordID)
}

func (s *Service) List(ctx context.Context) ([]Record, error) {
	return s.Store.ListAll(ctx)
}

func (s *Service) History(ctx context.Context, profileID string) ([]Record, error) {
	return s.Store.ListByProfile(ctx, profileID)
}

func (s *Service) Latest(ctx context.Context, profileID string) (*Record, error) {
	return s.Store.Latest(ctx, profileID)
}

// ExportCSV produces the full payroll snapshot; a pure read.
func (s *Service) ExportCSV(ctx context.Context) ([]byte, error) {
	records, err := s.Store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildCSV(records)
}

// ExportPDF renders the snapshot through the injected renderer.
func (s *Service) ExportPDF(ctx context.Context, now time.Time) ([]byte, error) {
	if s.Renderer == nil {
		return nil, fmt.Errorf("no report renderer configured")
	}
	records, err := s.Store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.Renderer.RenderPayrollReport(now, SortForReport(records))
}
