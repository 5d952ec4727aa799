package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xcabral/leaddesk/internal/entity"
	"github.com/xcabral/leaddesk/internal/infra/session"
)

// ============ TESTS ============

func TestRequireSessionRejectsMissingCookie(t *testing.T) {
	sm := NewSessionManager(session.NewMemoryStore(time.Hour), time.Hour)

	handler := sm.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, "/login", body["redirect"])
}

func TestRequireSessionRejectsUnknownSession(t *testing.T) {
	sm := NewSessionManager(session.NewMemoryStore(time.Hour), time.Hour)

	handler := sm.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "stale-id"})
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)

	// Stale cookie gets expired on the way out.
	cookies := res.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestRequireSessionBindsSessionToContext(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	sm := NewSessionManager(store, time.Hour)

	s := &session.Session{
		ID:    "sess-1",
		Token: "tok-abc",
		User:  entity.User{ID: "u1", Email: "ada@example.com"},
	}
	assert.NoError(t, store.Create(httptest.NewRequest(http.MethodGet, "/", nil).Context(), s))

	var seen *session.Session
	handler := sm.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = session.From(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "sess-1"})
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	assert.Equal(t, http.StatusOK, res.Code)
	assert.NotNil(t, seen)
	assert.Equal(t, "tok-abc", seen.Token)
	assert.Equal(t, "ada@example.com", seen.User.Email)
}
