package services

import (
	"log"
	"sync"
	"time"

	"github.com/doanpham16112005-crypto/EC312-sub000/internal/models"
)

// SessionStore holds per-sender conversation state. Implementations must
// make Update a per-sender critical section so two deliveries for the same
// sender cannot interleave their read-modify-write.
type SessionStore interface {
	// Get returns a copy of the sender's session, if one exists.
	Get(senderID string) (models.ChatSession, bool)
	// Update runs fn on the sender's session under its lock, creating the
	// session in IDLE on first use.
	Update(senderID string, fn func(*models.ChatSession))
	Delete(senderID string)
	ActiveCount() int
}

type sessionEntry struct {
	mu      sync.Mutex
	session *models.ChatSession
}

// MemorySessionStore keeps sessions in process memory with a lock per
// sender. Swap in a distributed implementation for multi-instance
// deployments.
type MemorySessionStore struct {
	mu          sync.Mutex
	sessions    map[string]*sessionEntry
	idleTimeout time.Duration
	stop        chan struct{}
}

// NewMemorySessionStore creates the in-memory session store and starts its
// idle sweeper.
func NewMemorySessionStore(idleTimeout time.Duration) *MemorySessionStore {
	s := &MemorySessionStore{
		sessions:    make(map[string]*sessionEntry),
		idleTimeout: idleTimeout,
		stop:        make(chan struct{}),
	}
	go s.sweepIdleSessions()
	return s
}

// entry returns the sender's entry, creating it lazily in IDLE.
func (s *MemorySessionStore) entry(senderID string) *sessionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.sessions[senderID]
	if !exists {
		e = &sessionEntry{
			session: &models.ChatSession{
				SenderID:  senderID,
				State:     models.StateIdle,
				UpdatedAt: time.Now(),
			},
		}
		s.sessions[senderID] = e
	}
	return e
}

func (s *MemorySessionStore) Get(senderID string) (models.ChatSession, bool) {
	s.mu.Lock()
	e, exists := s.sessions[senderID]
	s.mu.Unlock()
	if !exists {
		return models.ChatSession{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return *e.session, true
}

func (s *MemorySessionStore) Update(senderID string, fn func(*models.ChatSession)) {
	e := s.entry(senderID)
	e.mu.Lock()
	defer e.mu.Unlock()

	fn(e.session)
	e.session.UpdatedAt = time.Now()
}

func (s *MemorySessionStore) Delete(senderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, senderID)
}

// ActiveCount returns the number of sessions currently mid-conversation.
func (s *MemorySessionStore) ActiveCount() int {
	s.mu.Lock()
	entries := make([]*sessionEntry, 0, len(s.sessions))
	for _, e := range s.sessions {
		entries = append(entries, e)
	}
	s.mu.Unlock()

	count := 0
	for _, e := range entries {
		e.mu.Lock()
		if e.session.State != models.StateIdle {
			count++
		}
		e.mu.Unlock()
	}
	return count
}

// Stop halts the idle sweeper.
func (s *MemorySessionStore) Stop() {
	close(s.stop)
}

// sweepIdleSessions resets sessions that have been stuck mid-flow past the
// idle timeout. Entries stay in the map; only partial-order state is
// discarded.
func (s *MemorySessionStore) sweepIdleSessions() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
		}

		s.mu.Lock()
		entries := make(map[string]*sessionEntry, len(s.sessions))
		for id, e := range s.sessions {
			entries[id] = e
		}
		s.mu.Unlock()

		for id, e := range entries {
			e.mu.Lock()
			if e.session.State != models.StateIdle && time.Since(e.session.UpdatedAt) > s.idleTimeout {
				e.session.Reset()
				log.Printf("Session for %s reset after %v idle", id, s.idleTimeout)
			}
			e.mu.Unlock()
		}
	}
}
