package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-session-server/users"
)

const contentTypeHTML = "text/html; charset=utf-8"

// IndexHandler renders the home page
func (s *Server) IndexHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("index.html")
	if err != nil {
		panic("Failed to parse index template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]interface{}{
			"AppName": s.config.GetAppName(),
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// HealthHandler reports process liveness
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"service": s.config.GetAppName(),
		})
	}
}

// ProfilePageData contains data for rendering the protected profile page
type ProfilePageData struct {
	AppName   string
	Username  string
	Name      string
	LastLogin string
}

// ProfileHandler renders the protected profile page. RequireLogin has
// already placed the user on the request context.
func (s *Server) ProfileHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("profile.html")
	if err != nil {
		panic("Failed to parse profile template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := r.Context().Value(ContextKeyUser).(*users.User)
		if !ok {
			http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
			return
		}

		data := ProfilePageData{
			AppName:  s.config.GetAppName(),
			Username: user.Username,
			Name:     user.Name,
		}
		if !user.LastLogin.IsZero() {
			data.LastLogin = user.LastLogin.Format("2006-01-02 15:04:05 MST")
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render profile template")
			http.Error(w, "Failed to render profile page", http.StatusInternalServerError)
		}
	}
}
