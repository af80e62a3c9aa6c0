package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.Get("/", s.handleWelcome)
	r.Get("/health", s.handleHealth)

	// Auth endpoints (no token required)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
	})

	// Everything under /api requires a valid access token
	r.Route("/api", func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Route("/organisations", func(r chi.Router) {
			r.Get("/", s.handleListOrganisations)
			r.Post("/", s.handleCreateOrganisation)

			r.Route("/{orgId}", func(r chi.Router) {
				r.Get("/", s.handleGetOrganisation)
				r.Post("/users", s.handleAddMember)
			})
		})

		r.Get("/users/{userId}", s.handleGetUser)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeNotFound(w, "route not defined")
	})

	return r
}

// handleWelcome returns a plain welcome envelope at the root.
func (s *Server) handleWelcome(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, "Welcome to orgstack", nil)
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
