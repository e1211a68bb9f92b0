package sessions

import (
	"context"
	"time"
)

// Store is the contract between the session middleware and session
// persistence. Implementations must be safe for use by many concurrent
// requests.
type Store interface {
	// Get retrieves the payload stored for sid, stripped of storage
	// bookkeeping fields. A missing session is (nil, nil), not an error.
	Get(ctx context.Context, sid string) (Payload, error)

	// Set creates or fully replaces the record for sid. maxAge <= 0 means
	// "derive from the payload's cookie metadata, else DefaultMaxAge".
	Set(ctx context.Context, sid string, payload Payload, maxAge time.Duration) error

	// Destroy removes the record for sid. Destroying a session that does
	// not exist is not an error.
	Destroy(ctx context.Context, sid string) error
}
