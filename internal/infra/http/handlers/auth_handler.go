package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/xcabral/leaddesk/internal/entity"
	"github.com/xcabral/leaddesk/internal/infra/crm"
	"github.com/xcabral/leaddesk/internal/infra/http/middleware"
	"github.com/xcabral/leaddesk/internal/infra/session"
)

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (crm.LoginResult, error)
	Logout(ctx context.Context) error
	ChangePassword(ctx context.Context, current, updated string) error
}

type AuthHandler struct {
	API         AuthAPI
	Sessions    *middleware.SessionManager
	rateLimiter *RateLimiter
}

func NewAuthHandler(api AuthAPI, sessions *middleware.SessionManager) *AuthHandler {
	return &AuthHandler{
		API:         api,
		Sessions:    sessions,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 attempts/min per IP
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User entity.User `json:"user"`
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeError(w, http.StatusTooManyRequests, "Too many login attempts. Please try again later.")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	result, err := h.API.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// A 401 here means bad credentials, not an expired session.
		if errors.Is(err, crm.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		failUpstream(w, r, h.Sessions, "auth", err)
		return
	}

	s := &session.Session{
		ID:    uuid.New().String(),
		Token: result.Token,
		User:  result.User,
	}
	if err := h.Sessions.Issue(w, r, s); err != nil {
		log.Printf("❌ failed to store session: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{User: result.User})
}

func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	// Best effort upstream; local teardown happens regardless.
	if err := h.API.Logout(r.Context()); err != nil {
		log.Printf("⚠️ upstream logout failed: %v", err)
	}

	h.Sessions.Destroy(w, r)
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe returns the cached user bound to the session.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	s := session.From(r.Context())
	if s == nil {
		h.Sessions.ForceLogout(w, r)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{User: s.User})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *AuthHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "Current and new password are required")
		return
	}

	if err := h.API.ChangePassword(r.Context(), req.CurrentPassword, req.NewPassword); err != nil {
		failUpstream(w, r, h.Sessions, "auth", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
