package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// StoreAPI is the persistence surface the service needs. Satisfied by
// *Store.
type StoreAPI interface {
	ListHRRecipients(ctx context.Context) ([]string, error)
	CreateMessage(ctx context.Context, senderID, recipientID, subject, body string, replyTo *string) (string, error)
	Get(ctx context.Context, messageID string) (*Message, error)
	Inbox(ctx context.Context, recipientID string) ([]Message, error)
	MarkRead(ctx context.Context, messageID string) error
}

// Notifier raises an in-app notification for an account.
type Notifier interface {
	Notify(ctx context.Context, accountID, text string) error
}

type Service struct {
	Store    StoreAPI
	Notifier Notifier
	Logger   *slog.Logger
}

func NewService(store StoreAPI, notifier Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{Store: store, Notifier: notifier, Logger: logger}
}

// SendToHR delivers one copy of the message to every HR manager account
// and notifies each of them. With no HR managers present nothing is
// sent and ErrNoHRManagers is returned. A failure on one recipient is
// logged and delivery continues to the rest.
func (s *Service) SendToHR(ctx context.Context, senderID, senderName string, input SendInput) (int, error) {
	if strings.TrimSpace(input.Subject) == "" {
		return 0, ErrEmptySubject
	}
	if strings.TrimSpace(input.Body) == "" {
		return 0, ErrEmptyBody
	}

	recipients, err := s.Store.ListHRRecipients(ctx)
	if err != nil {
		return 0, err
	}
	if len(recipients) == 0 {
		return 0, ErrNoHRManagers
	}

	delivered := 0
	for _, recipientID := range recipients {
		if _, err := s.Store.CreateMessage(ctx, senderID, recipientID, input.Subject, input.Body, nil); err != nil {
			s.Logger.Warn("message delivery failed",
				slog.String("recipient", recipientID), slog.Any("error", err))
			continue
		}
		delivered++
		if err := s.Notifier.Notify(ctx, recipientID,
			fmt.Sprintf("New message from %s: %s", senderName, input.Subject)); err != nil {
			s.Logger.Warn("message notification failed",
				slog.String("recipient", recipientID), slog.Any("error", err))
		}
	}
	return delivered, nil
}

// Reply answers a message the caller received. The reply goes back to
// the original sender with a "Re: " subject.
func (s *Service) Reply(ctx context.Context, messageID, replierID, replierName string, input ReplyInput) (*Message, error) {
	if strings.TrimSpace(input.Body) == "" {
		return nil, ErrEmptyBody
	}

	parent, err := s.Store.Get(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if parent.RecipientID != replierID {
		return nil, ErrNotRecipient
	}

	subject := parent.Subject
	if !strings.HasPrefix(subject, "Re: ") {
		subject = "Re: " + subject
	}

	id, err := s.Store.CreateMessage(ctx, replierID, parent.SenderID, subject, input.Body, &parent.ID)
	if err != nil {
		return nil, err
	}
	if err := s.Notifier.Notify(ctx, parent.SenderID,
		fmt.Sprintf("%s replied to your message: %s", replierName, subject)); err != nil {
		s.Logger.Warn("reply notification failed",
			slog.String("recipient", parent.SenderID), slog.Any("error", err))
	}
	return s.Store.Get(ctx, id)
}

// Open returns a message to its recipient and marks it read. Opening
// an already read message keeps the original read timestamp.
func (s *Service) Open(ctx context.Context, messageID, readerID string) (*Message, error) {
	msg, err := s.Store.Get(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg.RecipientID != readerID {
		return nil, ErrNotRecipient
	}
	if !msg.Read {
		if err := s.Store.MarkRead(ctx, messageID); err != nil {
			return nil, err
		}
		msg.Read = true
	}
	return msg, nil
}

func (s *Service) Inbox(ctx context.Context, recipientID string) ([]Message, error) {
	return s.Store.Inbox(ctx, recipientID)
}
