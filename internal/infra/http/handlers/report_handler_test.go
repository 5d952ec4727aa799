package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xcabral/leaddesk/internal/infra/queue"
	"github.com/xcabral/leaddesk/internal/report"
)

// MockReportAPI
type MockReportAPI struct {
	mock.Mock
}

func (m *MockReportAPI) Report(ctx context.Context, kind string, from, to time.Time) (report.Data, error) {
	args := m.Called(ctx, kind, from, to)
	return args.Get(0).(report.Data), args.Error(1)
}

func (m *MockReportAPI) DashboardStats(ctx context.Context) (report.DashboardStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(report.DashboardStats), args.Error(1)
}

// MockProducer
type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) PublishReportEmail(ctx context.Context, payload queue.ReportEmailPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func reportRouter(h *ReportHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/reports/dashboard-stats", h.HandleDashboardStats)
	r.Post("/api/reports/email", h.HandleEmailReport)
	r.Get("/api/reports/{kind}", h.HandleReport)
	return r
}

// ============ TESTS ============

func TestHandleReportReturnsUpstreamData(t *testing.T) {
	want := report.Data{
		Kind:       report.KindConversion,
		Conversion: []report.ConversionPoint{{Name: "Jul 2026", Overall: 12}},
	}
	api := new(MockReportAPI)
	api.On("Report", mock.Anything, report.KindConversion, mock.Anything, mock.Anything).Return(want, nil)

	sm := newTestSessions()
	h := NewReportHandler(api, sm, new(MockProducer))

	req, _ := authedRequest(t, sm, http.MethodGet, "/api/reports/conversion", nil)
	res := httptest.NewRecorder()
	reportRouter(h).ServeHTTP(res, req)

	assert.Equal(t, http.StatusOK, res.Code)

	var got report.Data
	assert.NoError(t, json.Unmarshal(res.Body.Bytes(), &got))
	assert.Equal(t, report.KindConversion, got.Kind)
	assert.Len(t, got.Conversion, 1)
}

func TestHandleReportFallsBackToPlaceholder(t *testing.T) {
	api := new(MockReportAPI)
	api.On("Report", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(report.Data{}, errors.New("upstream down"))

	sm := newTestSessions()
	h := NewReportHandler(api, sm, new(MockProducer))

	req, _ := authedRequest(t, sm, http.MethodGet, "/api/reports/leads?startDate=2026-06-01&endDate=2026-08-01", nil)
	res := httptest.NewRecorder()
	reportRouter(h).ServeHTTP(res, req)

	// The charts still get something to draw.
	assert.Equal(t, http.StatusOK, res.Code)

	var got report.Data
	assert.NoError(t, json.Unmarshal(res.Body.Bytes(), &got))
	assert.Equal(t, report.KindLeads, got.Kind)
	assert.Len(t, got.Status, 3)
}

func TestHandleReportUnknownKind(t *testing.T) {
	sm := newTestSessions()
	h := NewReportHandler(new(MockReportAPI), sm, new(MockProducer))

	req, _ := authedRequest(t, sm, http.MethodGet, "/api/reports/weather", nil)
	res := httptest.NewRecorder()
	reportRouter(h).ServeHTTP(res, req)

	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestHandleReportCSVDownload(t *testing.T) {
	api := new(MockReportAPI)
	api.On("Report", mock.Anything, report.KindSalesPerformance, mock.Anything, mock.Anything).
		Return(report.Data{Kind: report.KindSalesPerformance, Performance: report.SamplePerformance()}, nil)

	sm := newTestSessions()
	h := NewReportHandler(api, sm, new(MockProducer))

	req, _ := authedRequest(t, sm, http.MethodGet, "/api/reports/sales-performance?format=csv", nil)
	res := httptest.NewRecorder()
	reportRouter(h).ServeHTTP(res, req)

	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "text/csv", res.Header().Get("Content-Type"))
	assert.Contains(t, res.Header().Get("Content-Disposition"), "sales-performance-report.csv")
	assert.True(t, strings.HasPrefix(res.Body.String(), "Sales Rep,"))
}

func TestHandleDashboardStatsFallback(t *testing.T) {
	api := new(MockReportAPI)
	api.On("DashboardStats", mock.Anything).
		Return(report.DashboardStats{}, errors.New("upstream down"))

	sm := newTestSessions()
	h := NewReportHandler(api, sm, new(MockProducer))

	req, _ := authedRequest(t, sm, http.MethodGet, "/api/reports/dashboard-stats", nil)
	res := httptest.NewRecorder()
	reportRouter(h).ServeHTTP(res, req)

	assert.Equal(t, http.StatusOK, res.Code)

	var got report.DashboardStats
	assert.NoError(t, json.Unmarshal(res.Body.Bytes(), &got))
	assert.Equal(t, report.SampleDashboardStats(), got)
}

func TestHandleEmailReportQueuesJob(t *testing.T) {
	data := report.Data{Kind: report.KindLeads, Status: []report.StatusPoint{{Name: "Jul 2026"}}}
	api := new(MockReportAPI)
	api.On("Report", mock.Anything, report.KindLeads, mock.Anything, mock.Anything).Return(data, nil)

	producer := new(MockProducer)
	producer.On("PublishReportEmail", mock.Anything, mock.Anything).Return(nil)

	sm := newTestSessions()
	h := NewReportHandler(api, sm, producer)

	// No explicit recipient: defaults to the session user.
	req, _ := authedRequest(t, sm, http.MethodPost, "/api/reports/email", strings.NewReader(`{"kind":"leads"}`))
	res := httptest.NewRecorder()
	reportRouter(h).ServeHTTP(res, req)

	assert.Equal(t, http.StatusAccepted, res.Code)

	queued := producer.Calls[0].Arguments.Get(1).(queue.ReportEmailPayload)
	assert.Equal(t, "ada@example.com", queued.To)
	assert.Equal(t, "ada@example.com", queued.RequestedBy)
	assert.Equal(t, report.KindLeads, queued.Report.Kind)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, true, body["queued"])
}

func TestHandleEmailReportUnknownKind(t *testing.T) {
	producer := new(MockProducer)
	sm := newTestSessions()
	h := NewReportHandler(new(MockReportAPI), sm, producer)

	req, _ := authedRequest(t, sm, http.MethodPost, "/api/reports/email", strings.NewReader(`{"kind":"weather"}`))
	res := httptest.NewRecorder()
	reportRouter(h).ServeHTTP(res, req)

	assert.Equal(t, http.StatusBadRequest, res.Code)
	producer.AssertNotCalled(t, "PublishReportEmail", mock.Anything, mock.Anything)
}

func TestHandleEmailReportPublishFailure(t *testing.T) {
	api := new(MockReportAPI)
	api.On("Report", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(report.Data{Kind: report.KindLeads}, nil)

	producer := new(MockProducer)
	producer.On("PublishReportEmail", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	sm := newTestSessions()
	h := NewReportHandler(api, sm, producer)

	req, _ := authedRequest(t, sm, http.MethodPost, "/api/reports/email", strings.NewReader(`{"kind":"leads"}`))
	res := httptest.NewRecorder()
	reportRouter(h).ServeHTTP(res, req)

	assert.Equal(t, http.StatusInternalServerError, res.Code)
}
