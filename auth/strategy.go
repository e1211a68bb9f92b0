// Package auth implements the username/password authentication strategy:
// credential verification against a user-record collaborator, and
// serialization of a user identity into the value a session carries.
package auth

import (
	"context"

	"github.com/pkg/errors"

	apperrors "github.com/jrsteele09/go-session-server/internal/errors"
	"github.com/jrsteele09/go-session-server/users"
)

// Strategy verifies credentials and maps users to and from the identity
// stored in a session payload. It makes no assumptions about the repo's
// implementation beyond "returns a user or a not-found indication".
type Strategy struct {
	users users.Repo
}

// NewStrategy initializes the strategy with its user-record collaborator.
func NewStrategy(userRepo users.Repo) (*Strategy, error) {
	if userRepo == nil {
		return nil, errors.New("[NewStrategy] user repo is required")
	}
	return &Strategy{users: userRepo}, nil
}

// Verify checks the supplied credentials and returns the matching user.
// Unknown usernames and wrong passwords both come back as
// InvalidCredentialsErr so the two are indistinguishable to a client.
func (s *Strategy) Verify(ctx context.Context, username, password string) (*users.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			return nil, InvalidCredentialsErr
		}
		return nil, errors.Wrap(err, "[Strategy.Verify] GetByUsername")
	}

	if user.Blocked {
		return nil, UserBlockedErr
	}

	if !user.CheckPassword(password) {
		return nil, InvalidCredentialsErr
	}

	return user, nil
}

// Serialize reduces a user to the identity value stored in the session.
func (s *Strategy) Serialize(user *users.User) string {
	return user.ID
}

// Deserialize restores the user behind a serialized identity.
func (s *Strategy) Deserialize(ctx context.Context, id string) (*users.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			return nil, UnknownIdentityErr
		}
		return nil, errors.Wrap(err, "[Strategy.Deserialize] GetByID")
	}
	return user, nil
}
