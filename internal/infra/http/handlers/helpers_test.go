package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/xcabral/leaddesk/internal/entity"
	"github.com/xcabral/leaddesk/internal/infra/http/middleware"
	"github.com/xcabral/leaddesk/internal/infra/session"
)

func newTestSessions() *middleware.SessionManager {
	return middleware.NewSessionManager(session.NewMemoryStore(time.Hour), time.Hour)
}

// authedRequest builds a request carrying a stored session, the way it
// looks after RequireSession ran.
func authedRequest(t *testing.T, sm *middleware.SessionManager, method, target string, body io.Reader) (*http.Request, *session.Session) {
	t.Helper()

	r := httptest.NewRequest(method, target, body)
	s := &session.Session{
		ID:    "sess-test",
		Token: "tok-test",
		User:  entity.User{ID: "u1", Name: "Ada Lovelace", Email: "ada@example.com"},
	}
	if err := sm.Store.Create(r.Context(), s); err != nil {
		t.Fatalf("failed to store test session: %v", err)
	}
	r.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: s.ID})
	return r.WithContext(session.With(r.Context(), s)), s
}
