package main

import (
	"sync"

	"bitbucket.org/mmdatafocus/hours_backend/models"
	"bitbucket.org/mmdatafocus/hours_backend/utils"
	"github.com/google/uuid"
)

// sessionStore is the in-memory session registry. Sessions die with the
// process; persistence is deliberately out of scope. The per-entry mutex is
// the mutual-exclusion boundary around recomputation and annotation
// re-attachment (the engine itself is synchronous and lock-free).
type sessionStore struct {
	mu      sync.RWMutex
	entries map[string]*sessionEntry
}

type sessionEntry struct {
	mu      sync.Mutex
	session *models.ReconciliationSession
}

func newSessionStore() *sessionStore {
	return &sessionStore{entries: map[string]*sessionEntry{}}
}

func (s *sessionStore) newId() string {
	return uuid.NewString()
}

func (s *sessionStore) put(session *models.ReconciliationSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[session.Id] = &sessionEntry{session: session}
}

// withSession runs fn while holding the session's lock.
func (s *sessionStore) withSession(id string, fn func(*models.ReconciliationSession) error) error {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return utils.ErrorSessionNotFound
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry.session)
}

func (s *sessionStore) delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}
