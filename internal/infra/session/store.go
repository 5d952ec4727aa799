package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/xcabral/leaddesk/internal/entity"
)

var ErrNotFound = errors.New("session not found")

// Session replaces the browser's localStorage token/user pair with an
// explicit object: the upstream bearer token plus the cached user,
// looked up by the cookie-carried id.
type Session struct {
	ID        string
	Token     string
	User      entity.User
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

type Store interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// MemoryStore keeps sessions in process memory. Good enough for a
// single instance; swap in the Postgres store when running more than one.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	m := &MemoryStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}

	go m.cleanup()
	return m
}

func (m *MemoryStore) Create(_ context.Context, s *Session) error {
	now := time.Now()
	s.CreatedAt = now
	s.ExpiresAt = now.Add(m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok || s.Expired() {
		return nil, ErrNotFound
	}

	copied := *s
	return &copied, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *MemoryStore) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		for id, s := range m.sessions {
			if s.Expired() {
				delete(m.sessions, id)
			}
		}
		m.mu.Unlock()
	}
}
