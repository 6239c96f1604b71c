package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"blogsite/internal/cache"
)

const (
	// CookieName is the name of the client cookie carrying the session ID.
	CookieName = "session_id"

	sessionKeyPrefix = "session:"
)

// Session is the server-side payload stored per authenticated client.
type Session struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Store defines session storage operations.
type Store interface {
	Create(ctx context.Context, email, password string) (string, error)
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// RedisStore keeps sessions in Redis, keyed by an opaque UUID. Expiry is
// delegated to Redis via the configured TTL.
type RedisStore struct {
	cache *cache.Client
	ttl   time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a session store with the given TTL.
func NewRedisStore(cache *cache.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{cache: cache, ttl: ttl}
}

// Create stores a new session and returns its ID.
func (s *RedisStore) Create(ctx context.Context, email, password string) (string, error) {
	payload, err := json.Marshal(Session{Email: email, Password: password})
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}

	id := uuid.New().String()
	if err := s.cache.Set(ctx, sessionKeyPrefix+id, payload, s.ttl); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return id, nil
}

// Get returns the session for id, or nil if it does not exist or has expired.
func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &sess, nil
}

// Delete destroys the session with the given ID.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+id)
}
