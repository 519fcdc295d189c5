package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"hrdesk/internal/domain/auth"
	"hrdesk/internal/platform/config"
)

// Seed provisions the bootstrap accounts. Profiles are created in the same
// step as the account; there is no lazy read-time provisioning.
func Seed(ctx context.Context, q Querier, cfg config.Config) error {
	if cfg.SeedSuperuserUsername != "" {
		if err := ensureAccount(ctx, q, cfg.SeedSuperuserUsername, cfg.SeedSuperuserPassword, auth.RoleHRManager, true); err != nil {
			return err
		}
	}
	if cfg.SeedHRManagerUsername != "" {
		if err := ensureAccount(ctx, q, cfg.SeedHRManagerUsername, cfg.SeedHRManagerPassword, auth.RoleHRManager, false); err != nil {
			return err
		}
	}
	return nil
}

func ensureAccount(ctx context.Context, q Querier, username, password, role string, superuser bool) error {
	var id string
	err := q.QueryRow(ctx, "SELECT id FROM accounts WHERE username = $1", username).Scan(&id)
	if err == nil {
		return nil
	}
	// Only a confirmed missing row may trigger provisioning; a lookup
	// failure must not lead to a duplicate insert attempt.
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	if err := q.QueryRow(ctx, `
    INSERT INTO accounts (username, email, password_hash, is_superuser)
    VALUES ($1, $2, $3, $4)
    RETURNING id
  `, username, username+"@example.com", hash, superuser).Scan(&id); err != nil {
		return err
	}

	_, err = q.Exec(ctx, `
    INSERT INTO profiles (account_id, role, department, join_date)
    VALUES ($1, $2, $3, $4)
  `, id, role, auth.DepartmentHR, time.Now())
	return err
}
