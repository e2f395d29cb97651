package session

import (
	"context"
	"sync"
)

type InMemStore struct {
	mu       sync.RWMutex
	sessions map[int64]Session
}

func NewInMemStore() *InMemStore {
	return &InMemStore{sessions: make(map[int64]Session)}
}

// Get returns a fresh menu session on first contact.
func (s *InMemStore) Get(_ context.Context, userID int64) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return New(), nil
	}
	return sess.Clone(), nil
}

func (s *InMemStore) Save(_ context.Context, userID int64, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[userID] = sess.Clone()
	return nil
}
