package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"mathquiz/models"

	"github.com/redis/go-redis/v9"
)

// sessionTTL bounds how long an abandoned session is kept before it is
// evicted from the store.
const sessionTTL = 2 * time.Hour

// SessionStore keeps at most one session per player name. Get returns
// (nil, nil) when no session exists for the name.
type SessionStore interface {
	Get(name string) (*models.Session, error)
	Save(session *models.Session) error
	Delete(name string) error
}

// RedisSessionStore persists sessions as JSON values with a TTL, so
// sessions survive process restarts and abandoned ones age out on their
// own.
type RedisSessionStore struct {
	redis *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{redis: client}
}

func sessionKey(name string) string {
	return "session:" + name
}

func (s *RedisSessionStore) Get(name string) (*models.Session, error) {
	data, err := s.redis.Get(context.Background(), sessionKey(name)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		log.Printf("Redis error getting session for %s: %v", name, err)
		return nil, err
	}

	var session models.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		log.Printf("Failed to unmarshal session for %s: %v", name, err)
		return nil, err
	}
	return &session, nil
}

func (s *RedisSessionStore) Save(session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %v", err)
	}

	if err := s.redis.Set(context.Background(), sessionKey(session.Name), data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store session in Redis: %v", err)
	}
	return nil
}

func (s *RedisSessionStore) Delete(name string) error {
	return s.redis.Del(context.Background(), sessionKey(name)).Err()
}

// MemorySessionStore is the fallback when Redis is not configured. Same
// TTL contract, checked lazily on read.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	session   models.Session
	expiresAt time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]memoryEntry)}
}

func (s *MemorySessionStore) Get(name string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[name]
	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.sessions, name)
		return nil, nil
	}

	session := entry.session
	return &session, nil
}

func (s *MemorySessionStore) Save(session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.Name] = memoryEntry{
		session:   *session,
		expiresAt: time.Now().Add(sessionTTL),
	}
	return nil
}

func (s *MemorySessionStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, name)
	return nil
}
