package memcache

import (
	"sync"
	"time"
)

// DefaultResetTokenTTL bounds how long a password reset link stays valid.
const DefaultResetTokenTTL = 15 * time.Minute

type ResetTokenStore interface {
	Set(token string, accountEmail string)

	// Consume returns the account email for token if not expired,
	// and removes the token (single-use). Returns "" if missing/expired.
	Consume(token string) string

	Peek(token string) (string, bool)
}

type entry struct {
	email     string
	expiresAt time.Time
}

// ResetTokens is an in-memory single-use token store. The store owns the
// expiry policy, so callers only ever hand it a token and an email.
type ResetTokens struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[string]entry
}

func NewResetTokens(ttl time.Duration) *ResetTokens {
	if ttl == 0 {
		ttl = DefaultResetTokenTTL
	}
	return &ResetTokens{
		ttl:  ttl,
		data: make(map[string]entry),
	}
}

func (s *ResetTokens) Set(token string, accountEmail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[token] = entry{
		email:     accountEmail,
		expiresAt: time.Now().Add(s.ttl),
	}
}

func (s *ResetTokens) Consume(token string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[token]
	if !ok {
		return ""
	}
	delete(s.data, token) // single-use
	if time.Now().After(e.expiresAt) {
		return ""
	}
	return e.email
}

func (s *ResetTokens) Peek(token string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[token]
	if !ok || time.Now().After(e.expiresAt) {
		return "", false
	}
	return e.email, true
}
