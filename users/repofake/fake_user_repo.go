package repofake

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/jrsteele09/go-session-server/internal/errors"
	"github.com/jrsteele09/go-session-server/users"
)

// FakeUserRepo is an in-memory implementation of users.Repo
type FakeUserRepo struct {
	mu         sync.RWMutex
	byID       map[string]*users.User
	byUsername map[string]*users.User
}

var _ users.Repo = (*FakeUserRepo)(nil)

// NewFakeUserRepo creates a new in-memory user repository
func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		byID:       make(map[string]*users.User),
		byUsername: make(map[string]*users.User),
	}
}

// Upsert creates or replaces a user, keyed by ID
func (r *FakeUserRepo) Upsert(_ context.Context, user *users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Copy so callers can't mutate stored state afterwards
	stored := *user
	if existing, ok := r.byID[stored.ID]; ok {
		delete(r.byUsername, existing.Username)
	}
	r.byID[stored.ID] = &stored
	r.byUsername[stored.Username] = &stored
	return nil
}

// Delete removes a user by username; deleting a missing user is not an error
func (r *FakeUserRepo) Delete(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byUsername[username]
	if !ok {
		return nil
	}
	delete(r.byUsername, username)
	delete(r.byID, user.ID)
	return nil
}

// GetByID retrieves a user by unique identifier
func (r *FakeUserRepo) GetByID(_ context.Context, id string) (*users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// GetByUsername retrieves a user by login name
func (r *FakeUserRepo) GetByUsername(_ context.Context, username string) (*users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byUsername[username]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// SetLastLogin stamps the user's last login time
func (r *FakeUserRepo) SetLastLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.LastLogin = at
	return nil
}
