package evaluation

import (
	"context"
	"errors"

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

const recordColumns = `
    e.id, e.profile_id, a.username, e.month, e.score::text,
    COALESCE(e.remarks, ''), e.evaluator_id::text, COALESCE(ev.username, ''), e.created_at`

const recordJoin = `
    FROM evaluations e
    JOIN profiles p ON e.profile_id = p.id
    JOIN accounts a ON p.account_id = a.id
    LEFT JOIN accounts ev ON e.evaluator_id = ev.id`

func scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	var score string
	err := row.Scan(&rec.ID, &rec.ProfileID, &rec.Employee, &rec.Month, &score,
		&rec.Remarks, &rec.EvaluatorID, &rec.Evaluator, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if rec.Score, err = decimal.NewFromString(score); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) Create(ctx context.Context, input AddInput, evaluatorID string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO evaluations (profile_id, month, score, remarks, evaluator_id)
    VALUES ($1,$2::date,$3::numeric,$4,$5)
    RETURNING id
  `, input.ProfileID, input.Month, input.Score.StringFixed(2), input.Remarks, evaluatorID).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, recordID string) (*Record, error) {
	return scanRecord(s.DB.QueryRow(ctx, `
    SELECT`+recordColumns+recordJoin+`
    WHERE e.id = $1
  `, recordID))
}

func (s *Store) ListAll(ctx context.Context, limit, offset int) ([]Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+recordColumns+recordJoin+`
    ORDER BY e.month DESC, a.username
    LIMIT $1 OFFSET $2
  `, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

func (s *Store) ListByProfile(ctx context.Context, profileID string) ([]Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+recordColumns+recordJoin+`
    WHERE e.profile_id = $1
    ORDER BY e.month DESC
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
    WHERE e.profile_id = $1
    ORDER BY e.month DESC
    LIMIT 1
  `, profileID))
}

// AverageScore is the all-time mean rounded to 2 decimals; 0 when no
// evaluations exist, never an error or null.
func (s *Store) AverageScore(ctx context.Context) (decimal.Decimal, error) {
	var avg string
	err := s.DB.QueryRow(ctx, "SELECT COALESCE(ROUND(AVG(score), 2), 0)::text FROM evaluations").Scan(&avg)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(avg)
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
