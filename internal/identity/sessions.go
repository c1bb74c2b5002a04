package identity

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionStore records live session IDs in Redis. A token is only good
// while its session key exists, which is what lets logout revoke a token
// before it expires.
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		rdb: rdb,
		ttl: ttl,
	}
}

func (s *SessionStore) Create(ctx context.Context, sessionID, userID string) error {
	return s.rdb.Set(ctx, sessionKeyPrefix+sessionID, userID, s.ttl).Err()
}

// UserID resolves the session to its user. Reports false for a session
// that was never created, expired, or was logged out.
func (s *SessionStore) UserID(ctx context.Context, sessionID string) (string, bool, error) {
	userID, err := s.rdb.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return userID, true, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
