// Package session issues opaque login tokens for the resident profile.
package session

import (
	"context"
	"sync"
	"time"

	"condocare/internal/util"
)

// Store persists session tokens.
type Store interface {
	NewSession(subject string) (string, error)
	Lookup(token string) (string, bool, error)
	Delete(token string) error
	// Clear revokes every session.
	Clear(ctx context.Context) error
}

type memorySession struct {
	subject   string
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory with TTL.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memorySession
}

// NewMemoryStore builds an in-memory session store. A zero ttl never expires.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memorySession),
	}
}

func (s *MemoryStore) NewSession(subject string) (string, error) {
	token := util.NewID()
	s.mu.Lock()
	defer s.mu.Unlock()
	var exp time.Time
	if s.ttl > 0 {
		exp = s.now().Add(s.ttl)
	}
	s.sessions[token] = memorySession{subject: subject, expiresAt: exp}
	return token, nil
}

func (s *MemoryStore) Lookup(token string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return "", false, nil
	}
	if !sess.expiresAt.IsZero() && !s.now().Before(sess.expiresAt) {
		delete(s.sessions, token)
		return "", false, nil
	}
	return sess.subject, true, nil
}

func (s *MemoryStore) Delete(token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(context.Context) error {
	s.mu.Lock()
	clear(s.sessions)
	s.mu.Unlock()
	return nil
}
