package redis

import (
	"context"
	"encoding/json"
	"time"

	"classquiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

const sessionKey = "classquiz:session"

// SessionStore persists the daily session snapshot as JSON in Redis, so the
// classroom survives a browser reload or a service restart within the same
// day. The TTL keeps stale days from lingering; the date check happens on
// the consumer side.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Save(snapshot domain.SessionSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return s.client.Set(context.Background(), sessionKey, raw, s.ttl).Err()
}

// Load returns the stored snapshot. A missing key or a corrupt payload is
// reported as "no snapshot" rather than an error; the caller falls back to
// fresh defaults.
func (s *SessionStore) Load() (domain.SessionSnapshot, bool, error) {
	raw, err := s.client.Get(context.Background(), sessionKey).Bytes()
	if err == redis.Nil {
		return domain.SessionSnapshot{}, false, nil
	}
	if err != nil {
		return domain.SessionSnapshot{}, false, err
	}
	var snap domain.SessionSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return domain.SessionSnapshot{}, false, nil
	}
	return snap, true, nil
}
