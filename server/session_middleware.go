package server

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyUser stores the authenticated *users.User
	ContextKeyUser ContextKey = "user"
	// ContextKeySessionID stores the sid of the live session
	ContextKeySessionID ContextKey = "session_id"
)

// payloadKeyUserID is the session payload key carrying the serialized user
// identity.
const payloadKeyUserID = "user_id"

// RequireLogin is middleware for HTML routes that loads the session behind
// the request's cookie and restores the user behind it. Requests without a
// live session are redirected to the login page; an absent session is
// handled as "not logged in", never as a failure.
func (s *Server) RequireLogin() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(s.config.GetSessionCookieName())
			if err != nil || cookie.Value == "" {
				http.Redirect(w, r, RouteLogin+"?error=Please+log+in", http.StatusSeeOther)
				return
			}

			payload, err := s.store.Get(r.Context(), cookie.Value)
			if err != nil {
				log.Err(err).Msg("session lookup failed")
				http.Error(w, "Session lookup failed", http.StatusInternalServerError)
				return
			}
			if payload == nil {
				// Absent or already expired by the backing store
				http.Redirect(w, r, RouteLogin+"?error=Session+expired", http.StatusSeeOther)
				return
			}

			identity, _ := payload[payloadKeyUserID].(string)
			user, err := s.strategy.Deserialize(r.Context(), identity)
			if err != nil {
				// The session outlived the user record; drop it
				_ = s.store.Destroy(r.Context(), cookie.Value)
				http.Redirect(w, r, RouteLogin+"?error=Session+expired", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			ctx = context.WithValue(ctx, ContextKeySessionID, cookie.Value)
			next(w, r.WithContext(ctx))
		}
	}
}
