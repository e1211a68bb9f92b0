package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/jrsteele09/go-session-server/internal/errors"
	"github.com/jrsteele09/go-session-server/users"
)

// EnsureAdminUser seeds the configured admin account on startup, so a fresh
// deployment has someone who can log in. An empty ADMIN_USERNAME disables
// the bootstrap; an existing account is left untouched.
func (s *Server) EnsureAdminUser(ctx context.Context) error {
	username := s.config.GetAdminUsername()
	if username == "" {
		return nil
	}

	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		log.Printf("[server EnsureAdminUser] admin user already exists: %s", username)
		return nil
	}
	if !apperrors.Is(err, apperrors.ErrUserNotFound) {
		return fmt.Errorf("[server EnsureAdminUser] failed to look up admin user: %w", err)
	}

	password := s.config.GetAdminPassword()
	if err := users.ValidatePasswordStrength(password); err != nil {
		return fmt.Errorf("[server EnsureAdminUser] admin password rejected: %w", err)
	}

	hash, err := users.HashPassword(password)
	if err != nil {
		return fmt.Errorf("[server EnsureAdminUser] failed to hash admin password: %w", err)
	}

	admin := &users.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		Name:         s.config.GetAdminName(),
		DateJoined:   time.Now(),
	}
	if err := s.users.Upsert(ctx, admin); err != nil {
		return fmt.Errorf("[server EnsureAdminUser] failed to create admin user: %w", err)
	}

	log.Printf("[server EnsureAdminUser] created admin user: %s", username)
	return nil
}
