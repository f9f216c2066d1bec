package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/violethawk/server/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

// WriteError maps a service error onto an HTTP status and writes a
// JSON error body. Internal errors are masked; the caller logs the
// original.
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, model.ErrAccountDisabled), errors.Is(err, model.ErrAccountBanned):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, model.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, model.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, model.ErrMalformedInput):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, model.ErrDuplicate), errors.Is(err, model.ErrVoteConflict):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, model.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
		message = "store unavailable"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
