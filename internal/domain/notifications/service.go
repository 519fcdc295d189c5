package notifications

import "context"

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

// Notify records a general in-app notification. Satisfies the
// messaging Notifier interface.
func (s *Service) Notify(ctx context.Context, accountID, text string) error {
	return s.Store.Create(ctx, accountID, TypeGeneral, text)
}

func (s *Service) NotifyTyped(ctx context.Context, accountID, ntype, text string) error {
	return s.Store.Create(ctx, accountID, ntype, text)
}

func (s *Service) List(ctx context.Context, accountID string, limit, offset int) ([]Notification, error) {
	return s.Store.List(ctx, accountID, limit, offset)
}

func (s *Service) Unread(ctx context.Context, accountID string) ([]Notification, error) {
	return s.Store.Unread(ctx, accountID)
}

func (s *Service) CountUnread(ctx context.Context, accountID string) (int, error) {
	return s.Store.CountUnread(ctx, accountID)
}

func (s *Service) MarkRead(ctx context.Context, accountID, notificationID string) error {
	return s.Store.MarkRead(ctx, accountID, notificationID)
}

func (s *Service) MarkAllRead(ctx context.Context, accountID string) error {
	return s.Store.MarkAllRead(ctx, accountID)
}
