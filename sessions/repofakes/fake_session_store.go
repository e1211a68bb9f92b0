package repofakes

import (
	"context"
	"sync"
	"time"

	"github.com/jrsteele09/go-session-server/sessions"
)

// FakeSessionStore is an in-memory implementation of sessions.Store for
// tests and local development. Expiry is checked lazily on read, standing
// in for the backing database's own sweep.
type FakeSessionStore struct {
	mu      sync.RWMutex
	records map[string]fakeRecord
}

type fakeRecord struct {
	payload   sessions.Payload
	expiresAt time.Time
}

var _ sessions.Store = (*FakeSessionStore)(nil)

// NewFakeSessionStore creates a new in-memory session store
func NewFakeSessionStore() *FakeSessionStore {
	return &FakeSessionStore{
		records: make(map[string]fakeRecord),
	}
}

// Get retrieves the payload for sid; (nil, nil) when absent or expired.
func (f *FakeSessionStore) Get(_ context.Context, sid string) (sessions.Payload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.records[sid]
	if !ok {
		return nil, nil
	}
	if !rec.expiresAt.After(time.Now()) {
		delete(f.records, sid)
		return nil, nil
	}
	return rec.payload.Clone(), nil
}

// Set creates or fully replaces the record for sid.
func (f *FakeSessionStore) Set(_ context.Context, sid string, payload sessions.Payload, maxAge time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.records[sid] = fakeRecord{
		payload:   payload.Clone(),
		expiresAt: time.Now().Add(sessions.MaxAge(payload, maxAge)),
	}
	return nil
}

// Destroy removes the record for sid; destroying a missing session is fine.
func (f *FakeSessionStore) Destroy(_ context.Context, sid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.records, sid)
	return nil
}

// Len reports the number of live records, for test assertions.
func (f *FakeSessionStore) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.records)
}
