package evaluation

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

// Add appends a new score for the employee. No per-month uniqueness is
// enforced.
func (s *Service) Add(ctx context.Context, input AddInput, evaluatorID string) (*Record, error) {
	if input.ProfileID == "" {
		return nil, errors.New("employee is required")
	}
	id, err := s.Store.Create(ctx, input, evaluatorID)
	if err != nil {
		return nil, err
	}
	return s.Store.Get(ctx, id)
}

func (s *Service) ListAll(ctx context.Context, limit, offset int) ([]Record, error) {
	return s.Store.ListAll(ctx, limit, offset)
}

func (s *Service) Mine(ctx context.Context, profileID string) ([]Record, error) {
	return s.Store.ListByProfile(ctx, profileID)
}

func (s *Service) Latest(ctx context.Context, profileID string) (*Record, error) {
	return s.Store.Latest(ctx, profileID)
}

func (s *Service) AverageScore(ctx context.Context) (decimal.Decimal, error) {
	return s.Store.AverageScore(ctx)
}
