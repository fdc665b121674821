package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dcollard/maestro/internal/auth"
	"github.com/dcollard/maestro/internal/composer"
	"github.com/dcollard/maestro/internal/infrastructure/config"
	"github.com/dcollard/maestro/internal/infrastructure/logging"
	"github.com/dcollard/maestro/internal/person"
	"github.com/dcollard/maestro/internal/roster"
	"github.com/dcollard/maestro/internal/shopper"
)

// HealthChecker reports whether the backing document store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Deps contains the dependencies for the API server.
type Deps struct {
	Config   config.APIConfig
	Security config.SecurityConfig
	Logger   *logging.Logger
	Version  string

	Composers     composer.Repository
	Persons       person.Repository
	Customers     shopper.Repository
	Teams         roster.Repository
	Authenticator *auth.Authenticator
	Store         HealthChecker
}

// Server is the Maestro HTTP API server.
type Server struct {
	cfg     config.APIConfig
	sec     config.SecurityConfig
	logger  *logging.Logger
	version string

	composers     composer.Repository
	persons       person.Repository
	customers     shopper.Repository
	teams         roster.Repository
	authenticator *auth.Authenticator
	store         HealthChecker

	metrics *metrics
	httpSrv *http.Server
}

// New creates a new API server from the given dependencies.
//
// Parameters:
//   - deps: Repositories, authenticator, configuration, and logger
//
// Returns:
//   - *Server: Configured server, not yet listening
//   - error: If a required dependency is missing
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, errors.New("api: logger is required")
	}
	if deps.Composers == nil || deps.Persons == nil || deps.Customers == nil || deps.Teams == nil {
		return nil, errors.New("api: all repositories are required")
	}
	if deps.Authenticator == nil {
		return nil, errors.New("api: authenticator is required")
	}

	s := &Server{
		cfg:           deps.Config,
		sec:           deps.Security,
		logger:        deps.Logger.With("component", "api"),
		version:       deps.Version,
		composers:     deps.Composers,
		persons:       deps.Persons,
		customers:     deps.Customers,
		teams:         deps.Teams,
		authenticator: deps.Authenticator,
		store:         deps.Store,
		metrics:       newMetrics(),
	}

	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", deps.Config.Host, deps.Config.Port),
		Handler:      s.routes(),
		ReadTimeout:  time.Duration(deps.Config.Timeouts.Read) * time.Second,
		WriteTimeout: time.Duration(deps.Config.Timeouts.Write) * time.Second,
		IdleTimeout:  time.Duration(deps.Config.Timeouts.Idle) * time.Second,
	}

	return s, nil
}

// Start begins serving HTTP requests. It blocks until the server stops.
//
// Returns:
//   - error: Listen failure, or nil on graceful shutdown
func (s *Server) Start() error {
	s.logger.Info("api server starting",
		"addr", s.httpSrv.Addr,
		"tls", s.cfg.TLS.Enabled,
	)

	var err error
	if s.cfg.TLS.Enabled {
		err = s.httpSrv.ListenAndServeTLS(s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
	} else {
		err = s.httpSrv.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api server: %w", err)
	}
	return nil
}

// Close gracefully shuts down the server, draining in-flight requests.
func (s *Server) Close(ctx context.Context) error {
	s.logger.Info("api server shutting down")
	if err := s.httpSrv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down api server: %w", err)
	}
	return nil
}

// Handler exposes the fully wired route tree. Used by tests to serve
// requests without binding a socket.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}
