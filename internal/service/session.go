package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionTTL bounds how long a login stays valid.
const SessionTTL = 24 * time.Hour

// Session is the server-side record behind a login cookie.
type Session struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// SessionStore keeps sessions keyed by session id. It is injected into
// whatever needs session lookup; there is no ambient session state.
type SessionStore interface {
	Save(ctx context.Context, sid string, sess Session) error
	Get(ctx context.Context, sid string) (*Session, error)
	Delete(ctx context.Context, sid string) error
}

// RedisSessionStore backs sessions with Redis, one JSON value per
// session id with the TTL refreshed on every save.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func sessionKey(sid string) string { return "session:" + sid }

func (s *RedisSessionStore) Save(ctx context.Context, sid string, sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return s.client.Set(ctx, sessionKey(sid), data, SessionTTL).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, sid string) (*Session, error) {
	data, err := s.client.Get(ctx, sessionKey(sid)).Bytes()
	if err == redis.Nil {
		return nil, NotFound("session not found")
	}
	if err != nil {
		return nil, Unavailable(err, "session store unreachable")
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &sess, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sid string) error {
	return s.client.Del(ctx, sessionKey(sid)).Err()
}

// MemorySessionStore is an in-process SessionStore for tests and local
// runs without Redis. Expiry is not enforced.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]Session)}
}

func (s *MemorySessionStore) Save(ctx context.Context, sid string, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = sess
	return nil
}

func (s *MemorySessionStore) Get(ctx context.Context, sid string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sid]
	if !ok {
		return nil, NotFound("session not found")
	}
	return &sess, nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}
