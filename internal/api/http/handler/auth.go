package handler

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/violethawk/server/internal/logger"
	"github.com/violethawk/server/internal/model"
	"github.com/violethawk/server/internal/service"
)

// AccessTokenCookie is the cookie browser sessions carry the token in.
const AccessTokenCookie = "access_token"

// Auth exposes registration, login and password change endpoints.
type Auth struct {
	auth           *service.Auth
	contextManager model.ContextManager
	tokenLifetime  time.Duration
	logger         *logger.Logger
}

// NewAuth creates the auth handler.
func NewAuth(auth *service.Auth, contextManager model.ContextManager, tokenLifetime time.Duration, logger *logger.Logger) *Auth {
	return &Auth{
		auth:           auth,
		contextManager: contextManager,
		tokenLifetime:  tokenLifetime,
		logger:         logger,
	}
}

type registerRequest struct {
	ScreenName string `json:"screen_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Password   string `json:"password"`
}

type userResponse struct {
	ID         uuid.UUID `json:"id"`
	ScreenName string    `json:"screen_name"`
	Email      string    `json:"email"`
}

// Register handles POST /api/auth/register.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, model.ErrMalformedInput)
		return
	}

	user, err := h.auth.Register(r.Context(), service.RegisterParams{
		ScreenName: req.ScreenName,
		Email:      req.Email,
		Phone:      req.Phone,
		Password:   req.Password,
	})
	if err != nil {
		h.logger.Debug("registration rejected", "error", err.Error())
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, userResponse{
		ID:         user.ID,
		ScreenName: user.ScreenName,
		Email:      user.Email,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login handles POST /api/auth/login. The issued token is returned in
// the body for API clients and set as a cookie for browser sessions.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, model.ErrMalformedInput)
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password, clientIP(r), 0)
	if err != nil {
		WriteError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenLifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Logout handles POST /api/auth/logout. Tokens are stateless, so this
// only clears the browser cookie.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword handles POST /api/auth/password.
func (h *Auth) ChangePassword(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.contextManager.GetPrincipal(r.Context())
	if !ok || principal == nil {
		WriteError(w, model.ErrUnauthorized)
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, model.ErrMalformedInput)
		return
	}

	if err := h.auth.ChangePassword(r.Context(), principal.ID, req.CurrentPassword, req.NewPassword); err != nil {
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// clientIP resolves the caller's address, preferring the reverse
// proxy's X-Real-IP header over the raw remote address.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
