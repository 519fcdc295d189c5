package profile

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"hrdesk/internal/platform/db"
)

type Store struct {
	DB db.Querier
}

func NewStore(q db.Querier) *Store {
	return &Store{DB: q}
}

const profileColumns = `
    p.id, p.account_id,
    a.username, a.email,
    COALESCE(a.first_name, ''), COALESCE(a.last_name, ''),
    a.is_superuser,
    p.role, COALESCE(p.department, ''), p.join_date,
    COALESCE(p.phone, ''), COALESCE(p.qualification, ''), COALESCE(p.address, ''),
    COALESCE(p.photo_path, ''),
    p.created_at`

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(
		&p.ID, &p.AccountID,
		&p.Username, &p.Email, &p.FirstName, &p.LastName, &p.Superuser,
		&p.Role, &p.Department, &p.JoinDate,
		&p.Phone, &p.Qualification, &p.Address, &p.PhotoPath,
		&p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) CreateAccount(ctx context.Context, username, email, passwordHash, firstName, lastName string, superuser bool) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO accounts (username, email, password_hash, first_name, last_name, is_superuser)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, username, email, passwordHash, firstName, lastName, superuser).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) CreateProfile(ctx context.Context, accountID, role, department string, joinDate time.Time, phone, qualification, address string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO profiles (account_id, role, department, join_date, phone, qualification, address)
    VALUES ($1,$2,$3,$4::date,$5,$6,$7)
    RETURNING id
  `, accountID, role, department, joinDate, phone, qualification, address).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, profileID string) (*Profile, error) {
	return scanProfile(s.DB.QueryRow(ctx, `
    SELECT`+profileColumns+`
    FROM profiles p
    JOIN accounts a ON p.account_id = a.id
    WHERE p.id = $1
  `, profileID))
}

func (s *Store) GetByAccountID(ctx context.Context, accountID string) (*Profile, error) {
	return scanProfile(s.DB.QueryRow(ctx, `
    SELECT`+profileColumns+`
    FROM profiles p
    JOIN accounts a ON p.account_id = a.id
    WHERE p.account_id = $1
  `, accountID))
}

// ListEmployees returns all non-superuser profiles, newest hires first.
func (s *Store) ListEmployees(ctx context.Context) ([]Profile, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+profileColumns+`
    FROM profiles p
    JOIN accounts a ON p.account_id = a.id
    WHERE a.is_superuser = FALSE
    ORDER BY p.join_date DESC, a.username
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

func (s *Store) UpdateContact(ctx context.Context, profileID string, input UpdateContactInput) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE profiles
    SET phone = $1, qualification = $2, address = $3
    WHERE id = $4
  `, input.Phone, input.Qualification, input.Address, profileID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdateEmployee(ctx context.Context, profileID string, input UpdateEmployeeInput) error {
	var accountID string
	err := s.DB.QueryRow(ctx, "SELECT account_id FROM profiles WHERE id = $1", profileID).Scan(&accountID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if _, err := s.DB.Exec(ctx, `
    UPDATE accounts
    SET email = COALESCE($1, email),
        first_name = COALESCE($2, first_name),
        last_name = COALESCE($3, last_name)
    WHERE id = $4
  `, input.Email, input.FirstName, input.LastName, accountID); err != nil {
		return err
	}

	_, err = s.DB.Exec(ctx, `
    UPDATE profiles
    SET role = COALESCE($1, role),
        department = COALESCE($2, department),
        phone = COALESCE($3, phone),
        qualification = COALESCE($4, qualification),
        address = COALESCE($5, address)
    WHERE id = $6
  `, input.Role, input.Department, input.Phone, input.Qualification, input.Address, profileID)
	return err
}

func (s *Store) SetPhoto(ctx context.Context, profileID, path string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE profiles SET photo_path = $1 WHERE id = $2", path, profileID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the underlying account; dependent rows cascade.
func (s *Store) Delete(ctx context.Context, profileID string) error {
	var accountID string
	err := s.DB.QueryRow(ctx, "SELECT account_id FROM profiles WHERE id = $1", profileID).Scan(&accountID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(ctx, "DELETE FROM accounts WHERE id = $1", accountID)
	return err
}

func (s *Store) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM accounts WHERE username = $1", username).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
