package session

import (
	"sync"

	"linkedpost/domain/model"

	"github.com/google/uuid"
)

// Store keeps sessions in memory for the lifetime of the process. There is
// deliberately no external persistence; losing the process loses the sessions.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session
}

func NewStore() *Store {
	return &Store{sessions: map[string]*model.Session{}}
}

// Get returns the session for id, or nil when unknown.
func (s *Store) Get(id string) *model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[id]
}

// Create makes a fresh session with a random id and registers it.
func (s *Store) Create() *model.Session {
	sess := &model.Session{ID: uuid.NewString()}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// GetOrCreate returns the session for id, creating a new one when the id is
// empty or unknown (e.g. after a restart invalidated old cookies).
func (s *Store) GetOrCreate(id string) *model.Session {
	if id != "" {
		if sess := s.Get(id); sess != nil {
			return sess
		}
	}
	return s.Create()
}

// Delete removes the session entirely.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
