package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"hrdesk/internal/platform/db"
)

type Store struct {
	DB db.Querier
}

func NewStore(q db.Querier) *Store {
	return &Store{DB: q}
}

func scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	var hours *string
	err := row.Scan(&rec.ID, &rec.ProfileID, &rec.Employee, &rec.Date, &rec.CheckIn, &rec.CheckOut, &hours, &rec.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if hours != nil {
		parsed, err := decimal.NewFromString(*hours)
		if err != nil {
			return nil, err
		}
		rec.WorkedHours = &parsed
	}
	return &rec, nil
}

const recordColumns = `
    r.id, r.profile_id, a.username, r.date, r.check_in, r.check_out,
    r.worked_hours::text, r.status`

const recordJoin = `
    FROM attendance_records r
    JOIN profiles p ON r.profile_id = p.id
    JOIN accounts a ON p.account_id = a.id`

func (s *Store) Get(ctx context.Context, recordID string) (*Record, error) {
	return scanRecord(s.DB.QueryRow(ctx, `
    SELECT`+recordColumns+recordJoin+`
    WHERE r.id = $1
  `, recordID))
}

func (s *Store) GetForDate(ctx context.Context, profileID string, day time.Time) (*Record, error) {
	return scanRecord(s.DB.QueryRow(ctx, `
    SELECT`+recordColumns+recordJoin+`
    WHERE r.profile_id = $1 AND r.date = $2::date
  `, profileID, day))
}

// Create inserts an empty record for the day. The unique (profile_id, date)
// constraint is the guard against concurrent double-submission.
func (s *Store) Create(ctx context.Context, profileID string, day time.Time) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO attendance_records (profile_id, date, status)
    VALUES ($1, $2::date, $3)
    ON CONFLICT (profile_id, date) DO UPDATE SET status = attendance_records.status
    RETURNING id
  `, profileID, day, StatusPresent).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) SetCheckIn(ctx context.Context, recordID string, checkIn time.Time) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE attendance_records
    SET check_in = $1
    WHERE id = $2 AND check_in IS NULL
  `, checkIn, recordID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyCheckedIn
	}
	return nil
}

func (s *Store) SetCheckOut(ctx context.Context, recordID string, checkOut time.Time, hours decimal.Decimal) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE attendance_records
    SET check_out = $1, worked_hours = $2::numeric
    WHERE id = $3 AND check_out IS NULL
  `, checkOut, hours.StringFixed(2), recordID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyCheckedOut
	}
	return nil
}

func (s *Store) Update(ctx context.Context, recordID string, checkIn, checkOut *time.Time, hours *decimal.Decimal, status string) error {
	var hoursText *string
	if hours != nil {
		text := hours.StringFixed(2)
		hoursText = &text
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE attendance_records
    SET check_in = $1, check_out = $2, worked_hours = $3::numeric, status = $4
    WHERE id = $5
  `, checkIn, checkOut, hoursText, status, recordID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListByProfile(ctx context.Context, profileID string, limit int) ([]Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+recordColumns+recordJoin+`
    WHERE r.profile_id = $1
    ORDER BY r.date DESC
    LIMIT $2
  `, profileID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

func (s *Store) ListAll(ctx context.Context, limit, offset int) ([]Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+recordColumns+recordJoin+`
    ORDER BY r.date DESC, a.username
    LIMIT $1 OFFSET $2
  `, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

func (s *Store) CountForDate(ctx context.Context, day time.Time) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM attendance_records WHERE date = $1::date", day).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
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
