// Package session holds the short-lived server-side state: authenticated
// login sessions and pending (not yet OTP-verified) registrations. Both are
// keyed by an opaque token handed to the client as a cookie.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Session struct {
	Token     string
	UserID    uint
	ExpiresAt time.Time
}

// Pending is a registration waiting for its OTP. At most one lives per
// registration token; a resubmitted registration overwrites it
// (last-writer-wins, a single registering user per session).
type Pending struct {
	Name         string
	Email        string
	PasswordHash string
	OTP          int
	Attempts     int
	ExpiresAt    time.Time
}

type Store interface {
	Create(userID uint) *Session
	Get(token string) (*Session, bool)
	Delete(token string)

	PutPending(token string, p *Pending)
	GetPending(token string) (*Pending, bool)
	DeletePending(token string)
}

type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	pending  map[string]*Pending

	sessionTTL time.Duration
	done       chan struct{}
	closeOnce  sync.Once
}

func NewMemoryStore(sessionTTL time.Duration) *MemoryStore {
	s := &MemoryStore{
		sessions:   make(map[string]*Session),
		pending:    make(map[string]*Pending),
		sessionTTL: sessionTTL,
		done:       make(chan struct{}),
	}
	go s.janitor()
	return s
}

func (s *MemoryStore) Create(userID uint) *Session {
	sess := &Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	s.mu.Lock()
	s.sessions[sess.Token] = sess
	s.mu.Unlock()
	return sess
}

func (s *MemoryStore) Get(token string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return nil, false
	}
	if time.Now().After(sess.ExpiresAt) {
		delete(s.sessions, token)
		return nil, false
	}
	return sess, true
}

func (s *MemoryStore) Delete(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

func (s *MemoryStore) PutPending(token string, p *Pending) {
	s.mu.Lock()
	s.pending[token] = p
	s.mu.Unlock()
}

func (s *MemoryStore) GetPending(token string) (*Pending, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[token]
	if !ok {
		return nil, false
	}
	if time.Now().After(p.ExpiresAt) {
		delete(s.pending, token)
		return nil, false
	}
	return p, true
}

func (s *MemoryStore) DeletePending(token string) {
	s.mu.Lock()
	delete(s.pending, token)
	s.mu.Unlock()
}

func (s *MemoryStore) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

func (s *MemoryStore) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for token, sess := range s.sessions {
				if now.After(sess.ExpiresAt) {
					delete(s.sessions, token)
				}
			}
			for token, p := range s.pending {
				if now.After(p.ExpiresAt) {
					delete(s.pending, token)
				}
			}
			s.mu.Unlock()
		}
	}
}
