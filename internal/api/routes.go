package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/gray-logic-audio/internal/routing"
)

// handleListRoutes resolves every strategy.
func (s *Server) handleListRoutes(w http.ResponseWriter, _ *http.Request) {
	routes := s.routing.Routes()
	writeJSON(w, http.StatusOK, map[string]any{
		"routes": routes,
		"count":  len(routes),
	})
}

// handleGetRoute resolves one strategy.
func (s *Server) handleGetRoute(w http.ResponseWriter, r *http.Request) {
	route, err := s.routing.Route(chi.URLParam(r, "strategy"))
	if errors.Is(err, routing.ErrUnknownStrategy) {
		writeNotFound(w, err.Error())
		return
	}
	if err != nil {
		writeInternalError(w, "failed to resolve route")
		return
	}
	writeJSON(w, http.StatusOK, route)
}

// handlePreferredDevice returns the single device a strategy would use,
// or 404 when none of its types is available.
func (s *Server) handlePreferredDevice(w http.ResponseWriter, r *http.Request) {
	info, ok, err := s.routing.PreferredDevice(chi.URLParam(r, "strategy"))
	if errors.Is(err, routing.ErrUnknownStrategy) {
		writeNotFound(w, err.Error())
		return
	}
	if err != nil {
		writeInternalError(w, "failed to resolve preferred device")
		return
	}
	if !ok {
		writeNotFound(w, "no device available for strategy")
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// handleDump returns the registries as text. verbose=true adds modules,
// profiles and current formats.
func (s *Server) handleDump(w http.ResponseWriter, r *http.Request) {
	verbose, _ := strconv.ParseBool(r.URL.Query().Get("verbose")) //nolint:errcheck // Absent or invalid means false
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // Best-effort write to response; connection may be closed
	w.Write([]byte(s.routing.Dump(verbose)))
}
