package profile

import (
	"context"
	"time"

	"hrdesk/internal/domain/auth"
)

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

// CreateEmployee provisions the account and its profile in one operation.
func (s *Service) CreateEmployee(ctx context.Context, input CreateEmployeeInput) (string, error) {
	taken, err := s.Store.UsernameTaken(ctx, input.Username)
	if err != nil {
		return "", err
	}
	if taken {
		return "", ErrUsernameTaken
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return "", err
	}

	role := input.Role
	if role == "" {
		role = auth.RoleEmployee
	}
	joinDate := input.JoinDate
	if joinDate.IsZero() {
		joinDate = time.Now()
	}

	accountID, err := s.Store.CreateAccount(ctx, input.Username, input.Email, hash, input.FirstName, input.LastName, false)
	if err != nil {
		return "", err
	}
	return s.Store.CreateProfile(ctx, accountID, role, input.Department, joinDate, input.Phone, input.Qualification, input.Address)
}

func (s *Service) Get(ctx context.Context, profileID string) (*Profile, error) {
	return s.Store.Get(ctx, profileID)
}

func (s *Service) GetByAccountID(ctx context.Context, accountID string) (*Profile, error) {
	return s.Store.GetByAccountID(ctx, accountID)
}

func (s *Service) ListEmployees(ctx context.Context) ([]Profile, error) {
	return s.Store.ListEmployees(ctx)
}

func (s *Service) UpdateContact(ctx context.Context, profileID string, input UpdateContactInput) error {
	return s.Store.UpdateContact(ctx, profileID, input)
}

func (s *Service) UpdateEmployee(ctx context.Context, profileID string, input UpdateEmployeeInput) error {
	return s.Store.UpdateEmployee(ctx, profileID, input)
}

func (s *Service) SetPhoto(ctx context.Context, profileID, path string) error {
	return s.Store.SetPhoto(ctx, profileID, path)
}

func (s *Service) Delete(ctx context.Context, profileID string) error {
	return s.Store.Delete(ctx, profileID)
}
