package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/xcabral/leaddesk/internal/infra/session"
)

const SessionCookie = "leaddesk_session"

// SessionManager owns the session cookie lifecycle. All forced-logout
// paths funnel through here so credentials are cleared exactly once.
type SessionManager struct {
	Store session.Store
	TTL   time.Duration
}

func NewSessionManager(store session.Store, ttl time.Duration) *SessionManager {
	return &SessionManager{Store: store, TTL: ttl}
}

// RequireSession resolves the cookie into a session and binds it to the
// request context. Requests without a valid session get the same 401 +
// redirect payload a forced logout produces.
func (m *SessionManager) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil {
			m.unauthorized(w)
			return
		}

		s, err := m.Store.Get(r.Context(), cookie.Value)
		if err != nil {
			m.clearCookie(w)
			m.unauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(session.With(r.Context(), s)))
	})
}

// Issue stores a fresh session and sets its cookie.
func (m *SessionManager) Issue(w http.ResponseWriter, r *http.Request, s *session.Session) error {
	if err := m.Store.Create(r.Context(), s); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    s.ID,
		Path:     "/",
		MaxAge:   int(m.TTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Destroy removes the stored session and expires its cookie.
func (m *SessionManager) Destroy(w http.ResponseWriter, r *http.Request) {
	if s := session.From(r.Context()); s != nil {
		m.Store.Delete(r.Context(), s.ID)
	}
	m.clearCookie(w)
}

// ForceLogout is the global 401 handler: tear the session down, clear
// the cookie, and tell the client to go back to login.
func (m *SessionManager) ForceLogout(w http.ResponseWriter, r *http.Request) {
	m.Destroy(w, r)
	RecordForcedLogout()
	m.unauthorized(w)
}

func (m *SessionManager) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *SessionManager) unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error":    "authentication required",
		"redirect": "/login",
	})
}
