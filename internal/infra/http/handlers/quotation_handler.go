package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xcabral/leaddesk/internal/entity"
	"github.com/xcabral/leaddesk/internal/infra/crm"
	"github.com/xcabral/leaddesk/internal/infra/http/middleware"
	"github.com/xcabral/leaddesk/internal/usecase"
)

type QuotationAPI interface {
	ListQuotations(ctx context.Context, p usecase.Params) (usecase.Page[entity.Quotation], error)
	CreateQuotation(ctx context.Context, payload usecase.SubmissionPayload) (entity.Quotation, error)
	DeleteQuotation(ctx context.Context, id string) error
	SendQuotation(ctx context.Context, id string) (string, error)
	QuotationStats(ctx context.Context) (json.RawMessage, error)
}

type QuotationHandler struct {
	API      QuotationAPI
	Sessions *middleware.SessionManager
	IDs      usecase.IDGenerator
}

func NewQuotationHandler(api QuotationAPI, sessions *middleware.SessionManager, ids usecase.IDGenerator) *QuotationHandler {
	return &QuotationHandler{API: api, Sessions: sessions, IDs: ids}
}

type quotationListResponse struct {
	Quotations []entity.Quotation `json:"quotations"`
	usecase.Pagination
}

type quotationEnvelope struct {
	Quotation entity.Quotation `json:"quotation"`
}

func (h *QuotationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := usecase.NewListQuery(h.API.ListQuotations, func(qt entity.Quotation) string { return qt.ID })
	q.Seed(paramsFromQuery(r))

	if err := q.Fetch(r.Context()); err != nil {
		if errors.Is(err, crm.ErrUnauthorized) {
			h.Sessions.ForceLogout(w, r)
			return
		}
		log.Printf("❌ failed to fetch quotations: %v", err)
		middleware.RecordUpstreamError("quotations")
	}

	writeJSON(w, http.StatusOK, quotationListResponse{
		Quotations: q.Rows(),
		Pagination: q.Pagination(),
	})
}

// HandleCreate replays the submitted draft through the quote builder:
// row amounts and document totals always come out of the recompute,
// whatever the client sent.
func (h *QuotationHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.QuotationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if errs := usecase.ValidateQuotationInput(input); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	payload := usecase.BuildQuotation(h.IDs, input)

	quotation, err := h.API.CreateQuotation(r.Context(), payload)
	if err != nil {
		failUpstream(w, r, h.Sessions, "quotations", err)
		return
	}

	middleware.RecordQuotationCreated()
	writeJSON(w, http.StatusCreated, quotationEnvelope{Quotation: quotation})
}

func (h *QuotationHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.API.DeleteQuotation(r.Context(), id); err != nil {
		if !isUpstreamNotFound(err) {
			failUpstream(w, r, h.Sessions, "quotations", err)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *QuotationHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	status, err := h.API.SendQuotation(r.Context(), id)
	if err != nil {
		if isUpstreamNotFound(err) {
			writeError(w, http.StatusNotFound, "Quotation not found")
			return
		}
		failUpstream(w, r, h.Sessions, "quotations", err)
		return
	}

	middleware.RecordQuotationSent()
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

func (h *QuotationHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.API.QuotationStats(r.Context())
	if err != nil {
		failUpstream(w, r, h.Sessions, "quotations", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(stats)
}
