package oauth

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

// stateStore holds one-time OAuth state nonces. Expired entries are pruned
// on every issue so the map never grows unbounded.
type stateStore struct {
	mu     sync.Mutex
	states map[string]time.Time
	ttl    time.Duration
}

func newStateStore(ttl time.Duration) *stateStore {
	return &stateStore{states: make(map[string]time.Time), ttl: ttl}
}

func (s *stateStore) Issue() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	state := base64.URLEncoding.EncodeToString(b)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for k, exp := range s.states {
		if now.After(exp) {
			delete(s.states, k)
		}
	}
	s.states[state] = now.Add(s.ttl)

	return state, nil
}

// Consume removes the state and reports whether it was live. A state can
// only ever be consumed once.
func (s *stateStore) Consume(state string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.states[state]
	if !ok {
		return false
	}
	delete(s.states, state)

	return time.Now().Before(exp)
}
