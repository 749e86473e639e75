// Package session keeps one shopping ledger per browser session.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/paulinadupin/the-dms-merchant-screen/internal/core"
)

// Session binds a ledger to a session ID. All ledger access, reads
// included, must go through Do so concurrent requests do not race.
type Session struct {
	ID       string
	Ledger   *core.Ledger
	lastSeen time.Time
	doMu     sync.Mutex
}

// Do runs fn with exclusive access to the session's ledger.
func (s *Session) Do(fn func(*core.Ledger) error) error {
	s.doMu.Lock()
	defer s.doMu.Unlock()
	return fn(s.Ledger)
}

// Manager owns all live sessions and expires idle ones.
type Manager struct {
	mu            sync.Mutex
	sessions      map[string]*Session
	ttl           time.Duration
	startingPurse core.Money
	stopCleanup   chan struct{}
	shutdownOnce  sync.Once
}

// NewManager creates a session manager. New sessions start with the
// given purse. Sessions idle longer than ttl are dropped.
func NewManager(startingPurse core.Money, ttl time.Duration) *Manager {
	m := &Manager{
		sessions:      make(map[string]*Session),
		ttl:           ttl,
		startingPurse: startingPurse,
		stopCleanup:   make(chan struct{}),
	}
	go m.startCleanup()
	return m
}

// startCleanup runs periodic cleanup to remove expired sessions.
func (m *Manager) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanupExpired()
		case <-m.stopCleanup:
			return
		}
	}
}

// cleanupExpired removes sessions idle longer than the TTL.
func (m *Manager) cleanupExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-m.ttl)
	for id, s := range m.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}

// Stop gracefully shuts down the cleanup goroutine.
func (m *Manager) Stop() {
	m.shutdownOnce.Do(func() {
		close(m.stopCleanup)
	})
}

// Get returns the session for id, or false if it does not exist or has
// expired.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	if time.Since(s.lastSeen) > m.ttl {
		delete(m.sessions, id)
		return nil, false
	}
	s.lastSeen = time.Now()
	return s, true
}

// Create starts a new session with the manager's default purse.
func (m *Manager) Create() (*Session, error) {
	return m.CreateWithPurse(m.startingPurse)
}

// CreateWithPurse starts a new session with an explicit purse.
func (m *Manager) CreateWithPurse(purse core.Money) (*Session, error) {
	id, err := newSessionID()
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:       id,
		Ledger:   core.NewLedger(purse),
		lastSeen: time.Now(),
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	return s, nil
}

// GetOrCreate returns the session for id, starting a fresh one when id
// is unknown or expired.
func (m *Manager) GetOrCreate(id string) (*Session, bool, error) {
	if id != "" {
		if s, ok := m.Get(id); ok {
			return s, false, nil
		}
	}
	s, err := m.Create()
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}

// Do runs fn with exclusive access to the session's ledger.
func (m *Manager) Do(id string, fn func(*core.Ledger) error) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		s.lastSeen = time.Now()
	}
	m.mu.Unlock()

	if !ok {
		return core.ErrInvalidInput
	}

	// The per-session lock keeps concurrent requests for the same
	// ledger serialized without blocking the whole manager.
	return s.Do(fn)
}

// ActiveSessions returns the number of live sessions.
func (m *Manager) ActiveSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func newSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
