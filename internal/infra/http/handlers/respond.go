package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/xcabral/leaddesk/internal/infra/crm"
	"github.com/xcabral/leaddesk/internal/infra/http/middleware"
	"github.com/xcabral/leaddesk/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeValidationErrors(w http.ResponseWriter, errs []usecase.ValidationError) {
	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		fields[e.Field] = e.Message
	}
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error":  "validation failed",
		"fields": fields,
	})
}

// failUpstream converts a collaborator error into the user-visible
// response: a 401 tears the session down, everything else becomes a
// logged 502. Never propagates upstream bodies to the client.
func failUpstream(w http.ResponseWriter, r *http.Request, sessions *middleware.SessionManager, resource string, err error) {
	if errors.Is(err, crm.ErrUnauthorized) {
		sessions.ForceLogout(w, r)
		return
	}
	log.Printf("❌ upstream %s call failed: %v", resource, err)
	middleware.RecordUpstreamError(resource)
	writeError(w, http.StatusBadGateway, "upstream CRM API unavailable")
}
