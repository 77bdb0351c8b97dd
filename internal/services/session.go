package services

import (
	"log"
	"sync"
	"time"

	"github.com/agendazap/agendazap-backend/internal/models"
	"github.com/agendazap/agendazap-backend/internal/storage"
)

// SessionStore keeps one conversation session per phone number
type SessionStore interface {
	// Get returns storage.ErrSessionNotFound when the phone has no
	// active session
	Get(phone string) (*models.ChatSession, error)
	Save(session *models.ChatSession) error
	Clear(phone string) error
}

const defaultSessionTTL = 30 * time.Minute

// MemorySessionStore keeps sessions in an in-process map with a TTL
type MemorySessionStore struct {
	sessions map[string]*memorySession
	mu       sync.RWMutex
	ttl      time.Duration
}

type memorySession struct {
	session   *models.ChatSession
	expiresAt time.Time
}

// NewMemorySessionStore creates an in-memory session store and starts its
// cleanup routine
func NewMemorySessionStore() *MemorySessionStore {
	s := &MemorySessionStore{
		sessions: make(map[string]*memorySession),
		ttl:      defaultSessionTTL,
	}

	go s.cleanupExpiredSessions()

	return s
}

func (s *MemorySessionStore) Get(phone string) (*models.ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.sessions[phone]
	if !exists || time.Now().After(entry.expiresAt) {
		return nil, storage.ErrSessionNotFound
	}
	return entry.session, nil
}

func (s *MemorySessionStore) Save(session *models.ChatSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session.UpdatedAt = time.Now()
	s.sessions[session.Phone] = &memorySession{
		session:   session,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

func (s *MemorySessionStore) Clear(phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, phone)
	return nil
}

// cleanupExpiredSessions runs periodically to drop expired sessions
func (s *MemorySessionStore) cleanupExpiredSessions() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		for phone, entry := range s.sessions {
			if time.Now().After(entry.expiresAt) {
				delete(s.sessions, phone)
				log.Printf("Cleaned up expired session for %s", phone)
			}
		}
		s.mu.Unlock()
	}
}
