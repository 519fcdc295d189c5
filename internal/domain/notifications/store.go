package notifications

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

func (s *Store) Create(ctx context.Context, accountID, ntype, text string) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO notifications (account_id, type, text)
    VALUES ($1,$2,$3)
  `, accountID, ntype, text)
	return err
}

func (s *Store) List(ctx context.Context, accountID string, limit, offset int) ([]Notification, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, account_id, type, text, is_read, created_at
    FROM notifications
    WHERE account_id = $1
    ORDER BY created_at DESC
    LIMIT $2 OFFSET $3
  `, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectNotifications(rows)
}

func (s *Store) Unread(ctx context.Context, accountID string) ([]Notification, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, account_id, type, text, is_read, created_at
    FROM notifications
    WHERE account_id = $1 AND is_read = FALSE
    ORDER BY created_at DESC
  `, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectNotifications(rows)
}

func (s *Store) CountUnread(ctx context.Context, accountID string) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx,
		"SELECT COUNT(*) FROM notifications WHERE account_id = $1 AND is_read = FALSE",
		accountID).Scan(&count)
	return count, err
}

// MarkRead marks one of the account's notifications read. Marking an
// already read notification succeeds without effect; a notification
// belonging to someone else is reported as not found.
func (s *Store) MarkRead(ctx context.Context, accountID, notificationID string) error {
	var read bool
	err := s.DB.QueryRow(ctx, `
    UPDATE notifications
    SET is_read = TRUE
    WHERE id = $1 AND account_id = $2
    RETURNING is_read
  `, notificationID, accountID).Scan(&read)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *Store) MarkAllRead(ctx context.Context, accountID string) error {
	_, err := s.DB.Exec(ctx,
		"UPDATE notifications SET is_read = TRUE WHERE account_id = $1 AND is_read = FALSE",
		accountID)
	return err
}

func collectNotifications(rows pgx.Rows) ([]Notification, error) {
	var items []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.AccountID, &n.Type, &n.Text, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}
