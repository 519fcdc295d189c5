package leave

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"hrdesk/internal/platform/db"
)

type Store struct {
	DB db.Querier
}

func NewStore(q db.Querier) *Store {
	return &Store{DB: q}
}

const requestColumns = `
    l.id, l.profile_id, a.username, l.leave_type, l.start_date, l.end_date,
    l.reason, l.status, l.approver_id::text, COALESCE(ap.username, ''), l.created_at`

const requestJoin = `
    FROM leave_requests l
    JOIN profiles p ON l.profile_id = p.id
    JOIN accounts a ON p.account_id = a.id
    LEFT JOIN accounts ap ON l.approver_id = ap.id`

func scanRequest(row pgx.Row) (*Request, error) {
	var req Request
	err := row.Scan(&req.ID, &req.ProfileID, &req.Employee, &req.Type, &req.StartDate, &req.EndDate,
		&req.Reason, &req.Status, &req.ApproverID, &req.Approver, &req.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *Store) Create(ctx context.Context, profileID string, input SubmitInput) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (profile_id, leave_type, start_date, end_date, reason, status)
    VALUES ($1,$2,$3::date,$4::date,$5,$6)
    RETURNING id
  `, profileID, input.Type, input.StartDate, input.EndDate, input.Reason, StatusPending).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, requestID string) (*Request, error) {
	return scanRequest(s.DB.QueryRow(ctx, `
    SELECT`+requestColumns+requestJoin+`
    WHERE l.id = $1
  `, requestID))
}

func (s *Store) ListByProfile(ctx context.Context, profileID string, limit int) ([]Request, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+requestColumns+requestJoin+`
    WHERE l.profile_id = $1
    ORDER BY l.start_date DESC
    LIMIT $2
  `, profileID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

func (s *Store) ListAll(ctx context.Context, limit, offset int) ([]Request, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+requestColumns+requestJoin+`
    ORDER BY l.start_date DESC
    LIMIT $1 OFFSET $2
  `, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

// Decide flips a pending request into a terminal state and stamps the
// approver. The status guard in the WHERE clause makes the transition
// single-winner under concurrent decisions.
func (s *Store) Decide(ctx context.Context, requestID, status, approverID string) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE leave_requests
    SET status = $1, approver_id = $2
    WHERE id = $3 AND status = $4
  `, status, approverID, requestID, StatusPending)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) CountPending(ctx context.Context) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM leave_requests WHERE status = $1", StatusPending).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func collectRequests(rows pgx.Rows) ([]Request, error) {
	var requests []Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}
