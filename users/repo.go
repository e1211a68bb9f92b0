package users

import (
	"context"
	"time"
)

// Repo is the user-record collaborator consumed by the authentication
// strategy: lookup by identifier, lookup by login name, and the writes the
// surrounding application needs. Implementations return
// internal/errors.ErrUserNotFound for missing users.
type Repo interface {
	Upsert(ctx context.Context, user *User) error
	Delete(ctx context.Context, username string) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	SetLastLogin(ctx context.Context, id string, at time.Time) error
}
