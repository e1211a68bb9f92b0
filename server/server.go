package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-session-server/auth"
	"github.com/jrsteele09/go-session-server/internal/config"
	"github.com/jrsteele09/go-session-server/sessions"
	"github.com/jrsteele09/go-session-server/users"
)

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	store    sessions.Store
	strategy *auth.Strategy
	users    users.Repo
}

func New(config config.Config, store sessions.Store, strategy *auth.Strategy, userRepo users.Repo) (*Server, error) {
	if store == nil {
		return nil, fmt.Errorf("[Server New] session store is required")
	}
	if strategy == nil {
		return nil, fmt.Errorf("[Server New] authentication strategy is required")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("[Server New] user repo is required")
	}

	s := &Server{
		mux:      http.NewServeMux(),
		config:   config,
		store:    store,
		strategy: strategy,
		users:    userRepo,
	}
	s.env = config.GetEnv()

	// Bootstrap: ensure the seed admin user exists
	if err := s.EnsureAdminUser(context.Background()); err != nil {
		return nil, fmt.Errorf("[Server New] failed to bootstrap admin user: %w", err)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
