package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/xcabral/leaddesk/internal/entity"
	"github.com/xcabral/leaddesk/internal/infra/crm"
	"github.com/xcabral/leaddesk/internal/infra/http/middleware"
	"github.com/xcabral/leaddesk/internal/usecase"
)

type LeadAPI interface {
	ListLeads(ctx context.Context, p usecase.Params) (usecase.Page[entity.Lead], error)
	GetLead(ctx context.Context, id string) (entity.Lead, error)
	CreateLead(ctx context.Context, input usecase.LeadInput) (entity.Lead, error)
	UpdateLead(ctx context.Context, id string, input usecase.LeadInput) (entity.Lead, error)
	DeleteLead(ctx context.Context, id string) error
	LeadStats(ctx context.Context) (json.RawMessage, error)
}

type LeadHandler struct {
	API      LeadAPI
	Sessions *middleware.SessionManager
}

func NewLeadHandler(api LeadAPI, sessions *middleware.SessionManager) *LeadHandler {
	return &LeadHandler{API: api, Sessions: sessions}
}

type leadListResponse struct {
	Leads []entity.Lead `json:"leads"`
	usecase.Pagination
}

type leadEnvelope struct {
	Lead entity.Lead `json:"lead"`
}

// paramsFromQuery maps list query parameters onto controller state.
func paramsFromQuery(r *http.Request) usecase.Params {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	return usecase.Params{
		Page:       page,
		Limit:      limit,
		Search:     query.Get("search"),
		Status:     query.Get("status"),
		AssignedTo: query.Get("assignedTo"),
	}
}

func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := usecase.NewListQuery(h.API.ListLeads, func(l entity.Lead) string { return l.ID })
	q.Seed(paramsFromQuery(r))

	if err := q.Fetch(r.Context()); err != nil {
		if errors.Is(err, crm.ErrUnauthorized) {
			h.Sessions.ForceLogout(w, r)
			return
		}
		// Degrade to an empty list; pagination keeps its prior value.
		log.Printf("❌ failed to fetch leads: %v", err)
		middleware.RecordUpstreamError("leads")
	}

	writeJSON(w, http.StatusOK, leadListResponse{
		Leads:      q.Rows(),
		Pagination: q.Pagination(),
	})
}

func (h *LeadHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	lead, err := h.API.GetLead(r.Context(), id)
	if err != nil {
		if isUpstreamNotFound(err) {
			writeError(w, http.StatusNotFound, "Lead not found")
			return
		}
		failUpstream(w, r, h.Sessions, "leads", err)
		return
	}
	writeJSON(w, http.StatusOK, leadEnvelope{Lead: lead})
}

func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.LeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if errs := usecase.ValidateLeadInput(input); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}
	if input.Status == "" {
		input.Status = entity.LeadStatusNew
	}

	lead, err := h.API.CreateLead(r.Context(), input)
	if err != nil {
		failUpstream(w, r, h.Sessions, "leads", err)
		return
	}
	writeJSON(w, http.StatusCreated, leadEnvelope{Lead: lead})
}

func (h *LeadHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input usecase.LeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if errs := usecase.ValidateLeadInput(input); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	lead, err := h.API.UpdateLead(r.Context(), id, input)
	if err != nil {
		if isUpstreamNotFound(err) {
			writeError(w, http.StatusNotFound, "Lead not found")
			return
		}
		failUpstream(w, r, h.Sessions, "leads", err)
		return
	}
	writeJSON(w, http.StatusOK, leadEnvelope{Lead: lead})
}

func (h *LeadHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.API.DeleteLead(r.Context(), id); err != nil {
		// Deleting an id that is already gone is a no-op.
		if !isUpstreamNotFound(err) {
			failUpstream(w, r, h.Sessions, "leads", err)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LeadHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.API.LeadStats(r.Context())
	if err != nil {
		failUpstream(w, r, h.Sessions, "leads", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(stats)
}

func isUpstreamNotFound(err error) bool {
	var apiErr *crm.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
