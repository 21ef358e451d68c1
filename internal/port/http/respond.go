package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mejbahuddintamim/bdrent-server/internal/platform/logger"
	"github.com/mejbahuddintamim/bdrent-server/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, statusCode int, payload interface{}, log logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

// respondServiceError translates the service error taxonomy into HTTP
// status codes. Unknown errors are reported as 500 without leaking the
// underlying message.
func respondServiceError(w http.ResponseWriter, err error, log logger.Logger) {
	switch {
	case errors.Is(err, service.ErrValidation):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()}, log)
	case errors.Is(err, service.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "resource not found"}, log)
	case errors.Is(err, service.ErrConflict):
		respondJSON(w, http.StatusConflict, errorResponse{Error: "listing is already booked"}, log)
	case errors.Is(err, service.ErrForbidden):
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "operation not permitted"}, log)
	default:
		log.Errorf("Unhandled service error: %v", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"}, log)
	}
}

func respondValidationError(w http.ResponseWriter, err error, log logger.Logger) {
	respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()}, log)
}
