package server

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-boardgame-service/auth"
	"github.com/jrsteele09/go-boardgame-service/collection"
	"github.com/jrsteele09/go-boardgame-service/internal/config"
	"github.com/jrsteele09/go-boardgame-service/reviews"
	"github.com/jrsteele09/go-boardgame-service/users"
	"github.com/pkg/errors"
)

// Services holds the domain services the HTTP layer dispatches into.
type Services struct {
	Auth       *auth.AuthenticationService
	Users      *users.Service
	Reviews    *reviews.Service
	Collection *collection.Service
}

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	services Services
	resolver *auth.Resolver
	log      zerolog.Logger
}

func New(cfg config.Config, services Services, resolver *auth.Resolver, log zerolog.Logger) (*Server, error) {
	if services.Auth == nil || services.Users == nil || services.Reviews == nil || services.Collection == nil {
		return nil, errors.New("[Server New] all services are required")
	}
	if resolver == nil {
		return nil, errors.New("[Server New] identity resolver is required")
	}

	s := &Server{
		env:      cfg.GetEnv(),
		mux:      http.NewServeMux(),
		config:   cfg,
		services: services,
		resolver: resolver,
		log:      log,
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

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			s.log.Debug().Str("method", parts[0]).Str("path", parts[1]).Msg("route")
		} else {
			s.log.Debug().Str("path", parts[0]).Msg("route")
		}
	}
}
