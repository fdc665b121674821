package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// routes builds the chi route tree with the full middleware chain.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.metricsMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodyLimitMiddleware)

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/composers", func(r chi.Router) {
			r.Get("/", s.handleListComposers)
			r.Post("/", s.handleCreateComposer)
			r.Get("/{id}", s.handleGetComposer)
			r.Put("/{id}", s.handleUpdateComposer)
			r.Delete("/{id}", s.handleDeleteComposer)
		})

		r.Route("/persons", func(r chi.Router) {
			r.Get("/", s.handleListPersons)
			r.Post("/", s.handleCreatePerson)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Post("/", s.handleCreateCustomer)
			r.Post("/{username}/invoices", s.handleCreateInvoice)
			r.Get("/{username}/invoices", s.handleListInvoices)
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", s.handleListTeams)
			r.Post("/", s.handleCreateTeam)
			r.Delete("/{id}", s.handleDeleteTeam)
			r.Post("/{id}/players", s.handleAddPlayer)
			r.Get("/{id}/players", s.handleListPlayers)
		})

		r.Post("/signup", s.handleSignup)
		r.Post("/login", s.handleLogin)
	})

	return r
}

// handleHealth reports process liveness and store reachability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK

	if s.store != nil {
		if err := s.store.HealthCheck(r.Context()); err != nil {
			s.logger.Warn("health check failed", "error", err)
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, code, map[string]string{
		"status":  status,
		"version": s.version,
	})
}
