package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/helpingbuddy/forum-api/internal/core/domain"
	"github.com/helpingbuddy/forum-api/internal/core/ports"
)

const defaultSessionTTL = 24 * time.Hour

// SessionStore keeps live login sessions in Redis.
// Key format: session:<session_id> -> "<user_id>:<username>" with TTL.
// Logout deletes the key, which invalidates the token ahead of its JWT expiry.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Put(ctx context.Context, sess ports.Session) error {
	value := sess.UserID + ":" + sess.Username
	if err := s.client.Set(ctx, s.key(sess.ID), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("session put: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (*ports.Session, error) {
	value, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("session get: %w", err)
	}

	userID, username, ok := splitSessionValue(value)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return &ports.Session{ID: sessionID, UserID: userID, Username: username}, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func (s *SessionStore) key(sessionID string) string {
	return "session:" + sessionID
}

func splitSessionValue(value string) (userID, username string, ok bool) {
	for i := 0; i < len(value); i++ {
		if value[i] == ':' {
			return value[:i], value[i+1:], true
		}
	}
	return "", "", false
}
