package messaging

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

const messageColumns = `
    m.id, m.sender_id, s.username, m.recipient_id, r.username,
    m.subject, m.body, m.reply_to::text, m.is_read, m.created_at, m.read_at`

const messageJoin = `
    FROM messages m
    JOIN accounts s ON m.sender_id = s.id
    JOIN accounts r ON m.recipient_id = r.id`

func scanMessage(row pgx.Row) (*Message, error) {
	var msg Message
	err := row.Scan(&msg.ID, &msg.SenderID, &msg.Sender, &msg.RecipientID, &msg.Recipient,
		&msg.Subject, &msg.Body, &msg.ReplyTo, &msg.Read, &msg.CreatedAt, &msg.ReadAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListHRRecipients returns account ids of every non-superuser account
// holding the HR manager role.
func (s *Store) ListHRRecipients(ctx context.Context) ([]string, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT a.id
    FROM accounts a
    JOIN profiles p ON p.account_id = a.id
    WHERE p.role = 'hr_manager' AND a.is_superuser = FALSE
    ORDER BY a.username
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) CreateMessage(ctx context.Context, senderID, recipientID, subject, body string, replyTo *string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO messages (sender_id, recipient_id, subject, body, reply_to)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, senderID, recipientID, subject, body, replyTo).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, messageID string) (*Message, error) {
	return scanMessage(s.DB.QueryRow(ctx, `
    SELECT`+messageColumns+messageJoin+`
    WHERE m.id = $1
  `, messageID))
}

func (s *Store) Inbox(ctx context.Context, recipientID string) ([]Message, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+messageColumns+messageJoin+`
    WHERE m.recipient_id = $1
    ORDER BY m.created_at DESC
  `, recipientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *msg)
	}
	return messages, rows.Err()
}

// MarkRead flips the read flag once; re-marking an already read message
// is a no-op.
func (s *Store) MarkRead(ctx context.Context, messageID string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE messages
    SET is_read = TRUE, read_at = COALESCE(read_at, now())
    WHERE id = $1
  `, messageID)
	return err
}

func (s *Store) CountUnread(ctx context.Context, recipientID string) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx,
		"SELECT COUNT(*) FROM messages WHERE recipient_id = $1 AND is_read = FALSE",
		recipientID).Scan(&count)
	return count, err
}
