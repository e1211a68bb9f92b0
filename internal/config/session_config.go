package config

import "time"

type SessionConfig interface {
	GetSessionCookieName() string
	GetSessionMaxAge() time.Duration
}

type SessionVars struct{}

var _ SessionConfig = SessionVars{}

func (SessionVars) GetSessionCookieName() string {
	return GetEnv("SESSION_COOKIE_NAME", "session_id")
}

// GetSessionMaxAge reads SESSION_MAX_AGE as a Go duration string,
// defaulting to 24 hours.
func (SessionVars) GetSessionMaxAge() time.Duration {
	valueStr := GetEnv("SESSION_MAX_AGE", "")
	if valueStr == "" {
		return 24 * time.Hour
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 24 * time.Hour
	}
	return value
}
