package server

import (
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-session-server/sessions"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	AppName  string
	Error    string
	Username string // Preserve username on error
}

// LoginPageUIHandler displays the login page (GET /login)
func (s *Server) LoginPageUIHandler() http.HandlerFunc {
	loginTmpl, err := ParseTemplate("login.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse login template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := LoginPageData{
			AppName:  s.config.GetAppName(),
			Error:    r.URL.Query().Get("error"),
			Username: r.URL.Query().Get("username"),
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := loginTmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render login template")
			http.Error(w, "Failed to render login page", http.StatusInternalServerError)
		}
	}
}

// LoginSubmissionHandler processes the login form submission (POST /login)
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		username := r.FormValue("username")
		password := r.FormValue("password")

		if username == "" || password == "" {
			redirectWithErrorAndUsername(w, r, RouteLogin, "Username and password are required", username)
			return
		}

		// Verify credentials; unknown user and wrong password read the same
		user, err := s.strategy.Verify(r.Context(), username, password)
		if err != nil {
			redirectWithErrorAndUsername(w, r, RouteLogin, "Invalid username or password", username)
			return
		}

		// Create the server-side session. The cookie metadata carries the
		// max-age; the store derives the record's expiry from it.
		sid := uuid.New().String()
		maxAge := s.config.GetSessionMaxAge()
		payload := sessions.Payload{
			payloadKeyUserID: s.strategy.Serialize(user),
			"cookie": map[string]any{
				"maxAge": int64(maxAge / time.Millisecond),
			},
		}

		if err := s.store.Set(r.Context(), sid, payload, 0); err != nil {
			log.Err(err).Msg("Failed to create session")
			redirectWithErrorAndUsername(w, r, RouteLogin, "Login failed, try again", username)
			return
		}

		s.setSessionCookie(w, sid, maxAge)

		if err := s.users.SetLastLogin(r.Context(), user.ID, time.Now()); err != nil {
			log.Err(err).Str("user", user.Username).Msg("Failed to update last login")
		}

		http.Redirect(w, r, RouteProfile, http.StatusSeeOther)
	}
}

// LogoutHandler destroys the session behind the request's cookie (GET /logout)
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(s.config.GetSessionCookieName())
		if err == nil && cookie.Value != "" {
			if err := s.store.Destroy(r.Context(), cookie.Value); err != nil {
				log.Err(err).Msg("Failed to destroy session")
			}
		}

		s.clearSessionCookie(w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// redirectWithErrorAndUsername redirects to path with an error message,
// preserving the typed username
func redirectWithErrorAndUsername(w http.ResponseWriter, r *http.Request, path, errorMsg, username string) {
	fullPath := path + "?error=" + url.QueryEscape(errorMsg)
	if username != "" {
		fullPath += "&username=" + url.QueryEscape(username)
	}
	http.Redirect(w, r, fullPath, http.StatusSeeOther)
}

// setSessionCookie sets the HTTP-only session cookie
func (s *Server) setSessionCookie(w http.ResponseWriter, sid string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.GetSessionCookieName(),
		Value:    sid,
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		HttpOnly: true,
		Secure:   s.env == "PROD", // Only secure in production
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.GetSessionCookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.env == "PROD",
		SameSite: http.SameSiteLaxMode,
	})
}
