package fixtures

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/staffdesk/ems-backend-go/internal/config"
	"github.com/staffdesk/ems-backend-go/internal/domain/user"
)

// SeedDefaultAdmin creates the bootstrap admin account if no account with the
// configured email exists yet. Idempotent across restarts.
func SeedDefaultAdmin(ctx context.Context, users user.Repository, cfg config.SeedConfig) error {
	if !cfg.DefaultAdmin {
		return nil
	}

	_, err := users.GetByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return fmt.Errorf("check for existing admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	created, err := users.Create(ctx, user.User{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Role:     user.RoleAdmin,
		IsActive: true,
	}, string(hash))
	if err != nil {
		return fmt.Errorf("create default admin: %w", err)
	}

	slog.Info("seeded default admin account", "user_id", created.ID, "email", created.Email)
	return nil
}
