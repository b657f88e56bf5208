package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"vocab-progress-service/internal/app"
)

// SessionStore is a Redis-aware implementation of app.SessionStore.
// Notes:
//   - Sessions themselves stay in-process; a QuizSession is bound to one
//     connection and is never shared across instances.
//   - Redis marks session liveness with a TTL key, which ops dashboards and
//     a future cross-instance projector can read.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.QuizSession
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.QuizSession),
	}
}

func (s *SessionStore) GetOrCreate(sessionID string) *app.QuizSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[sessionID]; ok {
		return session
	}
	session := app.NewQuizSession(sessionID)
	s.sessions[sessionID] = session
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(sessionID), "1", s.ttl).Err()
	return session
}

func (s *SessionStore) Get(sessionID string) (*app.QuizSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	return session, ok
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return
	}
	delete(s.sessions, sessionID)
	_ = s.client.Del(context.Background(), s.key(sessionID)).Err()
}

func (s *SessionStore) key(sessionID string) string {
	return "practice:session:" + sessionID
}
