package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/xcabral/leaddesk/internal/entity"
	"github.com/xcabral/leaddesk/internal/infra/session"
	"github.com/xcabral/leaddesk/internal/report"
	"github.com/xcabral/leaddesk/internal/usecase"
)

// ErrUnauthorized maps any upstream 401. Callers treat it as a forced
// logout signal, never as a retryable failure.
var ErrUnauthorized = errors.New("crm: unauthorized")

type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("crm api rejected request (status %d): %s", e.StatusCode, e.Body)
}

// Client is the single authenticated gateway to the upstream CRM API.
// The bearer token comes from the session bound to the request context,
// so no global token state exists anywhere.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("crm: marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	c.setHeaders(ctx, req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("crm: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("crm: decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) setHeaders(ctx context.Context, req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if s := session.From(ctx); s != nil && s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}
}

// ---- Auth ----

func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var out LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &out)
	return out, err
}

func (c *Client) Me(ctx context.Context) (entity.User, error) {
	var out userEnvelope
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &out)
	return out.User, err
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

func (c *Client) ChangePassword(ctx context.Context, current, updated string) error {
	body := changePasswordRequest{CurrentPassword: current, NewPassword: updated}
	return c.do(ctx, http.MethodPost, "/auth/change-password", nil, body, nil)
}

// ---- Leads ----

func (c *Client) ListLeads(ctx context.Context, p usecase.Params) (usecase.Page[entity.Lead], error) {
	var out leadListResponse
	if err := c.do(ctx, http.MethodGet, "/leads", p.Values(), nil, &out); err != nil {
		return usecase.Page[entity.Lead]{}, err
	}
	return usecase.Page[entity.Lead]{
		Rows:        out.Leads,
		CurrentPage: out.CurrentPage,
		TotalPages:  out.TotalPages,
		Total:       out.Total,
	}, nil
}

// LeadPager adapts the client to a list query fetcher.
func (c *Client) LeadPager() usecase.FetchFunc[entity.Lead] {
	return c.ListLeads
}

func (c *Client) GetLead(ctx context.Context, id string) (entity.Lead, error) {
	var out leadEnvelope
	err := c.do(ctx, http.MethodGet, "/leads/"+id, nil, nil, &out)
	return out.Lead, err
}

func (c *Client) CreateLead(ctx context.Context, input usecase.LeadInput) (entity.Lead, error) {
	var out leadEnvelope
	err := c.do(ctx, http.MethodPost, "/leads", nil, input, &out)
	return out.Lead, err
}

func (c *Client) UpdateLead(ctx context.Context, id string, input usecase.LeadInput) (entity.Lead, error) {
	var out leadEnvelope
	err := c.do(ctx, http.MethodPut, "/leads/"+id, nil, input, &out)
	return out.Lead, err
}

func (c *Client) DeleteLead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/leads/"+id, nil, nil, nil)
}

func (c *Client) LeadStats(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.do(ctx, http.MethodGet, "/leads/stats", nil, nil, &out)
	return out, err
}

// ---- Quotations ----

func (c *Client) ListQuotations(ctx context.Context, p usecase.Params) (usecase.Page[entity.Quotation], error) {
	var out quotationListResponse
	if err := c.do(ctx, http.MethodGet, "/quotations", p.Values(), nil, &out); err != nil {
		return usecase.Page[entity.Quotation]{}, err
	}
	return usecase.Page[entity.Quotation]{
		Rows:        out.Quotations,
		CurrentPage: out.CurrentPage,
		TotalPages:  out.TotalPages,
		Total:       out.Total,
	}, nil
}

func (c *Client) QuotationPager() usecase.FetchFunc[entity.Quotation] {
	return c.ListQuotations
}

func (c *Client) CreateQuotation(ctx context.Context, payload usecase.SubmissionPayload) (entity.Quotation, error) {
	var out quotationEnvelope
	err := c.do(ctx, http.MethodPost, "/quotations", nil, payload, &out)
	return out.Quotation, err
}

func (c *Client) DeleteQuotation(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/quotations/"+id, nil, nil, nil)
}

// SendQuotation transitions a draft to sent and returns the new status.
func (c *Client) SendQuotation(ctx context.Context, id string) (string, error) {
	var out statusResponse
	err := c.do(ctx, http.MethodPost, "/quotations/"+id+"/send", nil, nil, &out)
	return out.Status, err
}

func (c *Client) QuotationStats(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.do(ctx, http.MethodGet, "/quotations/stats", nil, nil, &out)
	return out, err
}

// ---- Reports ----

func (c *Client) Report(ctx context.Context, kind string, from, to time.Time) (report.Data, error) {
	query := url.Values{}
	query.Set("startDate", from.Format("2006-01-02"))
	query.Set("endDate", to.Format("2006-01-02"))

	var out report.Data
	if err := c.do(ctx, http.MethodGet, "/reports/"+kind, query, nil, &out); err != nil {
		return report.Data{}, err
	}
	out.Kind = kind
	return out, nil
}

func (c *Client) DashboardStats(ctx context.Context) (report.DashboardStats, error) {
	var out report.DashboardStats
	err := c.do(ctx, http.MethodGet, "/reports/dashboard-stats", nil, nil, &out)
	return out, err
}

// ---- Users & settings ----

func (c *Client) ListUsers(ctx context.Context) ([]entity.User, error) {
	var out userListResponse
	err := c.do(ctx, http.MethodGet, "/users", nil, nil, &out)
	return out.Users, err
}

func (c *Client) CompanySettings(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.do(ctx, http.MethodGet, "/settings/company", nil, nil, &out)
	return out, err
}

func (c *Client) UpdateCompanySettings(ctx context.Context, settings json.RawMessage) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.do(ctx, http.MethodPut, "/settings/company", nil, settings, &out)
	return out, err
}
