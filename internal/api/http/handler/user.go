package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/violethawk/server/internal/logger"
	"github.com/violethawk/server/internal/model"
	"github.com/violethawk/server/internal/service"
)

// User exposes profile and account administration endpoints.
type User struct {
	users          *service.User
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUser creates the user handler.
func NewUser(users *service.User, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{
		users:          users,
		contextManager: contextManager,
		logger:         logger,
	}
}

// GetProfile handles GET /api/users/{id}.
func (h *User) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, model.ErrMalformedInput)
		return
	}

	profile, err := h.users.GetProfile(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// Block handles POST /api/users/{id}/block.
func (h *User) Block(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, model.ErrMalformedInput)
		return
	}

	principal, _ := h.contextManager.GetPrincipal(r.Context())
	if err := h.users.Block(r.Context(), principal, id); err != nil {
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type setStatusRequest struct {
	Disabled bool `json:"disabled"`
	Banned   bool `json:"banned"`
}

// SetStatus handles PATCH /api/users/{id}/status.
func (h *User) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, model.ErrMalformedInput)
		return
	}

	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, model.ErrMalformedInput)
		return
	}

	principal, _ := h.contextManager.GetPrincipal(r.Context())
	if err := h.users.SetStatus(r.Context(), principal, id, req.Disabled, req.Banned); err != nil {
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
