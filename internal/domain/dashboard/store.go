package dashboard

import (
	"context"
	"time"

	"hrdesk/internal/platform/db"
)

type Store struct {
	DB db.Querier
}

func NewStore(q db.Querier) *Store {
	return &Store{DB: q}
}

func (s *Store) TotalAccounts(ctx context.Context) (int, error) {
	return s.count(ctx, "SELECT COUNT(*) FROM accounts")
}

// TotalEmployees counts employee-role profiles, superusers excluded.
func (s *Store) TotalEmployees(ctx context.Context) (int, error) {
	return s.count(ctx, `
    SELECT COUNT(*)
    FROM profiles p
    JOIN accounts a ON p.account_id = a.id
    WHERE p.role = 'employee' AND a.is_superuser = FALSE
  `)
}

func (s *Store) TotalHRManagers(ctx context.Context) (int, error) {
	return s.count(ctx, `
    SELECT COUNT(*)
    FROM profiles p
    JOIN accounts a ON p.account_id = a.id
    WHERE p.role = 'hr_manager' AND a.is_superuser = FALSE
  `)
}

func (s *Store) TodayAttendance(ctx context.Context, day time.Time) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx,
		"SELECT COUNT(*) FROM attendance_records WHERE date = $1::date AND check_in IS NOT NULL",
		day).Scan(&count)
	return count, err
}

func (s *Store) count(ctx context.Context, query string) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, query).Scan(&count)
	return count, err
}
