package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xcabral/leaddesk/internal/infra/crm"
	"github.com/xcabral/leaddesk/internal/infra/http/middleware"
	"github.com/xcabral/leaddesk/internal/infra/queue"
	"github.com/xcabral/leaddesk/internal/infra/session"
	"github.com/xcabral/leaddesk/internal/report"
)

type ReportAPI interface {
	Report(ctx context.Context, kind string, from, to time.Time) (report.Data, error)
	DashboardStats(ctx context.Context) (report.DashboardStats, error)
}

type ReportHandler struct {
	API      ReportAPI
	Sessions *middleware.SessionManager
	Producer queue.ProducerInterface
}

func NewReportHandler(api ReportAPI, sessions *middleware.SessionManager, producer queue.ProducerInterface) *ReportHandler {
	return &ReportHandler{API: api, Sessions: sessions, Producer: producer}
}

// reportRange parses startDate/endDate, defaulting to the last month.
func reportRange(r *http.Request) (time.Time, time.Time) {
	now := time.Now()
	from := now.AddDate(0, -1, 0)
	to := now

	if raw := r.URL.Query().Get("startDate"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			from = parsed
		}
	}
	if raw := r.URL.Query().Get("endDate"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			to = parsed
		}
	}
	return from, to
}

func (h *ReportHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	if !report.IsValidKind(kind) {
		writeError(w, http.StatusNotFound, "Unknown report type")
		return
	}

	from, to := reportRange(r)

	data, err := h.API.Report(r.Context(), kind, from, to)
	if err != nil {
		if errors.Is(err, crm.ErrUnauthorized) {
			h.Sessions.ForceLogout(w, r)
			return
		}
		// Charts render placeholder data instead of an error state.
		log.Printf("❌ failed to fetch %s report, serving placeholder: %v", kind, err)
		middleware.RecordUpstreamError("reports")
		data = report.SampleData(kind, from, to)
	}

	if r.URL.Query().Get("format") == "csv" {
		csv, err := report.RenderCSV(data)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to render CSV")
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-report.csv"`, kind))
		w.WriteHeader(http.StatusOK)
		w.Write(csv)
		return
	}

	writeJSON(w, http.StatusOK, data)
}

func (h *ReportHandler) HandleDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.API.DashboardStats(r.Context())
	if err != nil {
		if errors.Is(err, crm.ErrUnauthorized) {
			h.Sessions.ForceLogout(w, r)
			return
		}
		log.Printf("❌ failed to fetch dashboard stats, serving placeholder: %v", err)
		middleware.RecordUpstreamError("reports")
		stats = report.SampleDashboardStats()
	}
	writeJSON(w, http.StatusOK, stats)
}

type emailReportRequest struct {
	Kind      string `json:"kind"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	To        string `json:"to,omitempty"`
}

// HandleEmailReport fetches the report while the session is still good
// and queues the delivery; the worker only renders and mails.
func (h *ReportHandler) HandleEmailReport(w http.ResponseWriter, r *http.Request) {
	var req emailReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if !report.IsValidKind(req.Kind) {
		writeError(w, http.StatusBadRequest, "Unknown report type")
		return
	}

	s := session.From(r.Context())
	if req.To == "" {
		if s == nil || s.User.Email == "" {
			writeError(w, http.StatusBadRequest, "Recipient is required")
			return
		}
		req.To = s.User.Email
	}

	now := time.Now()
	from, to := now.AddDate(0, -1, 0), now
	if parsed, err := time.Parse("2006-01-02", req.StartDate); err == nil {
		from = parsed
	}
	if parsed, err := time.Parse("2006-01-02", req.EndDate); err == nil {
		to = parsed
	}

	data, err := h.API.Report(r.Context(), req.Kind, from, to)
	if err != nil {
		failUpstream(w, r, h.Sessions, "reports", err)
		return
	}

	payload := queue.ReportEmailPayload{
		To:     req.To,
		Report: data,
	}
	if s != nil {
		payload.RequestedBy = s.User.Email
	}

	if err := h.Producer.PublishReportEmail(r.Context(), payload); err != nil {
		log.Printf("❌ failed to queue report email: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to queue report email")
		return
	}

	middleware.RecordReportEmailQueued()
	writeJSON(w, http.StatusAccepted, map[string]any{"queued": true, "to": req.To})
}
