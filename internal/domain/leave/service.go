package leave

import (
	"context"
	"errors"
)

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) Submit(ctx context.Context, profileID string, input SubmitInput) (*Request, error) {
	if !ValidType(input.Type) {
		return nil, errors.New("invalid leave type")
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, errors.New("end date before start date")
	}

	id, err := s.Store.Create(ctx, profileID, input)
	if err != nil {
		return nil, err
	}
	return s.Store.Get(ctx, id)
}

func (s *Service) Approve(ctx context.Context, requestID, approverID string) (*Request, error) {
	return s.decide(ctx, requestID, StatusApproved, approverID)
}

func (s *Service) Reject(ctx context.Context, requestID, approverID string) (*Request, error) {
	return s.decide(ctx, requestID, StatusRejected, approverID)
}

func (s *Service) decide(ctx context.Context, requestID, status, approverID string) (*Request, error) {
	current, err := s.Store.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(current.Status, status) {
		return nil, ErrNotPending
	}

	decided, err := s.Store.Decide(ctx, requestID, status, approverID)
	if err != nil {
		return nil, err
	}
	if !decided {
		// Lost the race against a concurrent decision.
		return nil, ErrNotPending
	}
	return s.Store.Get(ctx, requestID)
}

func (s *Service) Mine(ctx context.Context, profileID string, limit int) ([]Request, error) {
	return s.Store.ListByProfile(ctx, profileID, limit)
}

func (s *Service) ListAll(ctx context.Context, limit, offset int) ([]Request, error) {
	return s.Store.ListAll(ctx, limit, offset)
}

func (s *Service) Get(ctx context.Context, requestID string) (*Request, error) {
	return s.Store.Get(ctx, requestID)
}
