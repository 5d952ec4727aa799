package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/xcabral/leaddesk/internal/entity"
	"github.com/xcabral/leaddesk/internal/infra/http/middleware"
)

type DirectoryAPI interface {
	ListUsers(ctx context.Context) ([]entity.User, error)
	CompanySettings(ctx context.Context) (json.RawMessage, error)
	UpdateCompanySettings(ctx context.Context, settings json.RawMessage) (json.RawMessage, error)
}

// SettingsHandler serves the team directory and company settings pages.
type SettingsHandler struct {
	API      DirectoryAPI
	Sessions *middleware.SessionManager
}

func NewSettingsHandler(api DirectoryAPI, sessions *middleware.SessionManager) *SettingsHandler {
	return &SettingsHandler{API: api, Sessions: sessions}
}

type userListResponse struct {
	Users []entity.User `json:"users"`
}

func (h *SettingsHandler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.API.ListUsers(r.Context())
	if err != nil {
		failUpstream(w, r, h.Sessions, "users", err)
		return
	}
	writeJSON(w, http.StatusOK, userListResponse{Users: users})
}

func (h *SettingsHandler) HandleGetCompany(w http.ResponseWriter, r *http.Request) {
	settings, err := h.API.CompanySettings(r.Context())
	if err != nil {
		failUpstream(w, r, h.Sessions, "settings", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(settings)
}

func (h *SettingsHandler) HandleUpdateCompany(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil || !json.Valid(body) {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	updated, err := h.API.UpdateCompanySettings(r.Context(), body)
	if err != nil {
		failUpstream(w, r, h.Sessions, "settings", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(updated)
}
