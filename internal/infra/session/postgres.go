package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/xcabral/leaddesk/internal/entity"
)

// PostgresStore persists sessions so logins survive restarts and can be
// shared across instances.
type PostgresStore struct {
	DB  *sql.DB
	TTL time.Duration
}

func NewPostgresStore(db *sql.DB, ttl time.Duration) *PostgresStore {
	return &PostgresStore{DB: db, TTL: ttl}
}

func (r *PostgresStore) Create(ctx context.Context, s *Session) error {
	userJSON, err := json.Marshal(s.User)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO sessions (id, token, user_data, created_at, expires_at)
		VALUES ($1, $2, $3, NOW(), NOW() + $4::interval)
		RETURNING created_at, expires_at
	`

	return r.DB.QueryRowContext(
		ctx,
		query,
		s.ID,
		s.Token,
		userJSON,
		fmt.Sprintf("%d seconds", int64(r.TTL.Seconds())),
	).Scan(&s.CreatedAt, &s.ExpiresAt)
}

func (r *PostgresStore) Get(ctx context.Context, id string) (*Session, error) {
	query := `
		SELECT id, token, user_data, created_at, expires_at
		FROM sessions
		WHERE id = $1 AND expires_at > NOW()
	`

	var s Session
	var userJSON []byte

	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&s.ID,
		&s.Token,
		&userJSON,
		&s.CreatedAt,
		&s.ExpiresAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var user entity.User
	if err := json.Unmarshal(userJSON, &user); err != nil {
		return nil, err
	}
	s.User = user

	return &s, nil
}

func (r *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}
