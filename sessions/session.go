package sessions

import "time"

// DefaultMaxAge is used when neither the caller nor the payload's cookie
// metadata supplies a max-age for a session write.
const DefaultMaxAge = 24 * time.Hour

// Payload is the application-level session state: a mapping of arbitrary
// session-state keys to values. The store clones it on every write, so a
// caller's in-memory copy is never mutated by storage bookkeeping.
type Payload map[string]any

// Clone returns a copy of the payload. Mutating the clone's top-level keys
// does not affect the original.
func (p Payload) Clone() Payload {
	if p == nil {
		return Payload{}
	}
	clone := make(Payload, len(p))
	for k, v := range p {
		clone[k] = v
	}
	return clone
}

// MaxAge resolves the effective max-age for a session write, in priority
// order: the explicit argument, then a numeric maxAge/maxage field in the
// payload's cookie metadata (milliseconds), then DefaultMaxAge.
//
// A non-numeric cookie maxAge falls through to the default rather than
// failing - callers store whatever cookie metadata they like.
func MaxAge(p Payload, explicit time.Duration) time.Duration {
	if explicit > 0 {
		return explicit
	}
	cookie, ok := p["cookie"].(map[string]any)
	if !ok {
		return DefaultMaxAge
	}
	for _, key := range []string{"maxAge", "maxage"} {
		if ms, ok := numericMillis(cookie[key]); ok {
			return ms
		}
	}
	return DefaultMaxAge
}

// numericMillis interprets a cookie max-age value as a duration. Plain
// numbers are milliseconds, a time.Duration is taken as-is.
func numericMillis(v any) (time.Duration, bool) {
	switch n := v.(type) {
	case time.Duration:
		return n, true
	case int:
		return time.Duration(n) * time.Millisecond, true
	case int32:
		return time.Duration(n) * time.Millisecond, true
	case int64:
		return time.Duration(n) * time.Millisecond, true
	case float32:
		return time.Duration(float64(n) * float64(time.Millisecond)), true
	case float64:
		return time.Duration(n * float64(time.Millisecond)), true
	}
	return 0, false
}
