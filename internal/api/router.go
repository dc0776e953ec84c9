package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/gray-logic-audio/internal/auth"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Group(func(r chi.Router) {
			r.Use(s.requirePermission(auth.PermRouteRead))

			r.Get("/metrics", s.handleMetrics)
			r.Get("/ws", s.handleWebSocket)
			r.Get("/dump", s.handleDump)

			r.Route("/devices", func(r chi.Router) {
				r.Get("/", s.handleListDevices)
				r.Get("/declared", s.handleListDeclared)
				r.Get("/types", s.handleListDeviceTypes)
				r.With(s.requirePermission(auth.PermConnectionWrite)).Post("/connection", s.handleConnection)
				r.Get("/{id}", s.handleGetDevice)
			})

			r.Route("/routes", func(r chi.Router) {
				r.Get("/", s.handleListRoutes)
				r.Get("/{strategy}", s.handleGetRoute)
				r.Get("/{strategy}/preferred", s.handlePreferredDevice)
			})

			r.With(s.requirePermission(auth.PermAuditRead)).Get("/audit", s.handleListAuditLogs)
		})
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
