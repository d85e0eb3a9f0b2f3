package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"driveshare/pkg/apperr"
	"driveshare/pkg/logger"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("failed to encode response", logger.Error(err))
	}
}

// writeError maps the domain error taxonomy onto HTTP statuses and renders a
// stable {error, message} body. Anything outside the taxonomy is treated as
// internal and its detail is kept out of the response.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		s.log.Error("unhandled error", logger.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   string(apperr.KindInternal),
			Message: "internal error",
		})
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Kind {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindAuth:
		status = http.StatusUnauthorized
	case apperr.KindForbidden:
		status = http.StatusForbidden
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindConflict, apperr.KindState:
		status = http.StatusConflict
	case apperr.KindInternal:
		s.log.Error("internal error", logger.Error(appErr))
	}

	s.writeJSON(w, status, errorResponse{
		Error:   string(appErr.Kind),
		Message: appErr.Message,
	})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, into interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		s.writeError(w, apperr.Wrap(apperr.KindValidation, "invalid request body", err))
		return false
	}
	return true
}
