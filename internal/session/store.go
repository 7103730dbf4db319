package session

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"resumeforge/internal/errors"
)

const (
	tokenBytes             = 32
	defaultTTL             = 30 * time.Minute
	defaultCleanupInterval = 5 * time.Minute
)

// Entry holds the cached resume for one browser session
type Entry struct {
	ResumeText string
	FileName   string
}

type record struct {
	entry   Entry
	expires time.Time
}

// Store is an in-memory session store keyed by opaque token.
// Entries expire after the configured TTL; access refreshes the TTL.
type Store struct {
	mu      sync.RWMutex
	entries map[string]record
	ttl     time.Duration
	done    chan struct{} // Channel to signal cleanup goroutine to stop
	logger  *errors.Logger
}

// NewStore creates a session store and starts its cleanup goroutine
func NewStore(ttl, cleanupInterval time.Duration, logger *errors.Logger) *Store {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if cleanupInterval <= 0 {
		cleanupInterval = defaultCleanupInterval
	}

	s := &Store{
		entries: make(map[string]record),
		ttl:     ttl,
		done:    make(chan struct{}),
		logger:  logger,
	}

	go s.cleanupRoutine(cleanupInterval)
	return s
}

// NewToken generates an opaque session token
func (s *Store) NewToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.NewInternalError(errors.ErrCodeInternalError,
			"Failed to generate session token", err)
	}
	return hex.EncodeToString(buf), nil
}

// Put stores an entry under the given token
func (s *Store) Put(token string, entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[token] = record{
		entry:   entry,
		expires: time.Now().Add(s.ttl),
	}
}

// Get retrieves the entry for a token and refreshes its TTL
func (s *Store) Get(token string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, exists := s.entries[token]
	if !exists {
		return Entry{}, false
	}

	if time.Now().After(rec.expires) {
		delete(s.entries, token)
		return Entry{}, false
	}

	rec.expires = time.Now().Add(s.ttl)
	s.entries[token] = rec

	return rec.entry, true
}

// Delete removes the entry for a token
func (s *Store) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, token)
}

// GetStats returns current session store statistics
func (s *Store) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]any{
		"active_sessions": len(s.entries),
		"ttl_seconds":     s.ttl.Seconds(),
	}
}

// cleanupRoutine periodically removes expired sessions
func (s *Store) cleanupRoutine(cleanupInterval time.Duration) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.done:
			return
		}
	}
}

// cleanup removes sessions whose TTL has elapsed
func (s *Store) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for token, rec := range s.entries {
		if now.After(rec.expires) {
			delete(s.entries, token)
		}
	}

	if s.logger != nil {
		s.logger.Debug("Session cleanup completed",
			"remaining_sessions", len(s.entries))
	}
}

// Close stops the cleanup goroutine. Should be called when shutting down the server.
func (s *Store) Close() {
	close(s.done)
}
