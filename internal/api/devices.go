package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/gray-logic-audio/internal/audio"
	"github.com/nerrad567/gray-logic-audio/internal/audioport"
	"github.com/nerrad567/gray-logic-audio/internal/routing"
)

// handleListDevices returns the available devices. The optional type query
// parameter is a device type name, or several joined by "|"; devices of
// the mask's direction sharing one of its types are returned. Names mixing
// input and output types are rejected.
func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	mask := audio.DeviceNone
	if v := r.URL.Query().Get("type"); v != "" {
		parsed, err := audio.ParseDeviceType(v)
		if err != nil {
			writeBadRequest(w, err.Error())
			return
		}
		mask = parsed
	}

	devices := s.routing.Devices(mask)
	writeJSON(w, http.StatusOK, map[string]any{
		"devices": devices,
		"count":   len(devices),
	})
}

// handleListDeviceTypes returns the device type names the type filter and
// connection events accept.
func (s *Server) handleListDeviceTypes(w http.ResponseWriter, _ *http.Request) {
	names := audio.DeviceTypeNames()
	writeJSON(w, http.StatusOK, map[string]any{
		"types": names,
		"count": len(names),
	})
}

// handleListDeclared returns the device templates declared in config.
func (s *Server) handleListDeclared(w http.ResponseWriter, _ *http.Request) {
	devices := s.routing.Declared()
	writeJSON(w, http.StatusOK, map[string]any{
		"devices": devices,
		"count":   len(devices),
	})
}

// handleGetDevice returns one available device by id.
func (s *Server) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeBadRequest(w, "device id must be a positive integer")
		return
	}

	info, ok := s.routing.Device(audioport.Handle(id))
	if !ok {
		writeNotFound(w, "device not found")
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// handleConnection applies a connection event. The body carries the device
// type, e.g. {"type":"OUT_HDMI","state":"connected","address":"hdmi-0"}.
func (s *Server) handleConnection(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeBadRequest(w, "failed to read request body")
		return
	}

	ev, err := routing.ParseConnectionMessage("", body)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, ErrCodeValidation, err.Error())
		return
	}
	ev.Source = "api"
	if claims := claimsFromContext(r.Context()); claims != nil {
		ev.Source = "api:" + claims.Subject
	}

	err = s.routing.SetDeviceConnectionState(r.Context(), ev)
	switch {
	case err == nil:
	case errors.Is(err, routing.ErrAlreadyConnected), errors.Is(err, routing.ErrNotConnected):
		writeConflict(w, err.Error())
		return
	case errors.Is(err, routing.ErrUndeclaredDevice), errors.Is(err, routing.ErrInvalidEvent):
		writeError(w, http.StatusUnprocessableEntity, ErrCodeValidation, err.Error())
		return
	default:
		// The registry changed; only a side effect (publish) failed.
		s.logger.Warn("connection applied with errors", "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"type":    ev.Type.String(),
		"address": ev.Address,
		"state":   ev.State.String(),
	})
}
