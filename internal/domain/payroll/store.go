package payroll

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"hrdesk/internal/platform/db"
)

type Store struct {
	DB db.Querier
}

func NewStore(q db.Querier) *Store {
	return &Store{DB: q}
}

const recordColumns = `
    pr.id, pr.profile_id, a.username, pr.month, pr.year,
    pr.base_salary::text, pr.bonuses::text, pr.deductions::text, pr.net_salary::text,
    COALESCE(pr.remarks, ''), pr.created_at`

const recordJoin = `
    FROM payroll_records pr
    JOIN profiles p ON pr.profile_id = p.id
    JOIN accounts a ON p.account_id = a.id`

func scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	var base, bonuses, deductions, net string
	err := row.Scan(&rec.ID, &rec.ProfileID, &rec.Employee, &rec.Month, &rec.Year,
		&base, &bonuses, &deductions, &net, &rec.Remarks, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if rec.BaseSalary, err = decimal.NewFromString(base); err != nil {
		return nil, err
	}
	if rec.Bonuses, err = decimal.NewFromString(bonuses); err != nil {
		return nil, err
	}
	if rec.Deductions, err = decimal.NewFromString(deductions); err != nil {
		return nil, err
	}
	if rec.NetSalary, err = decimal.NewFromString(net); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) ExistsForProfile(ctx context.Context, profileID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM payroll_records WHERE profile_id = $1", profileID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) Create(ctx context.Context, rec Record) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO payroll_records (profile_id, month, year, base_salary, bonuses, deductions, net_salary, remarks)
    VALUES ($1,$2,$3,$4::numeric,$5::numeric,$6::numeric,$7::numeric,$8)
    RETURNING id
  `, rec.ProfileID, rec.Month, rec.Year,
		rec.BaseSalary.StringFixed(2), rec.Bonuses.StringFixed(2),
		rec.Deductions.StringFixed(2), rec.NetSalary.StringFixed(2), rec.Remarks).Scan(&id)
	if err != nil {
		// The unique constraint on profile_id is the authority on duplicates;
		// the pre-insert existence check can race.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", ErrExists
		}
		return "", err
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, recordID string) (*Record, error) {
	return scanRecord(s.DB.QueryRow(ctx, `
    SELECT`+recordColumns+recordJoin+`
    WHERE pr.id = $1
  `, recordID))
}

func (s *Store) Update(ctx context.Context, rec *Record) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE payroll_records
    SET base_salary = $1::numeric, bonuses = $2::numeric, deductions = $3::numeric,
        net_salary = $4::numeric, remarks = $5
    WHERE id = $6
  `, rec.BaseSalary.StringFixed(2), rec.Bonuses.StringFixed(2),
		rec.Deductions.StringFixed(2), rec.NetSalary.StringFixed(2), rec.Remarks, rec.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListAll(ctx context.Context) ([]Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT` + recordColumns + recordJoin + `
    ORDER BY a.username, pr.year, pr.month
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

func (s *Store) ListByProfile(ctx context.Context, profileID string) ([]Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+recordColumns+recordJoin+`
    WHERE pr.profile_id = $1
    ORDER BY pr.year DESC, pr.month DESC
  `, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

func (s *Store) Latest(ctx context.Context, profileID string) (*Record, error) {
	return scanRecord(s.DB.QueryRow(ctx, `
    SELECT`+recordColumns+recordJoin+`
    WHERE pr.profile_id = $1
    ORDER BY pr.year DESC, pr.month DESC
    LIMIT 1
  `, profileID))
}

func collectRecords(rows pgx.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}
