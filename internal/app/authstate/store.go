// Package authstate keeps the last-known authentication status of a client
// process. The store is a cache of the canonical /api/auth/check answer,
// never a source of truth: the cookie jar is authoritative.
package authstate

import (
	"sync"

	"github.com/utecoffee/warehouse-gateway/internal/app/auth"
)

type State struct {
	IsAuthenticated bool
	UserInfo        *auth.UserInfo
	// IsChecked flips to true once the first check resolves, success or
	// failure, and stays true for the life of the process.
	IsChecked bool
}

// Store is a process-wide, injectable auth state container.
type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) GetState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := s.state
	if state.UserInfo != nil {
		info := *state.UserInfo
		state.UserInfo = &info
	}

	return state
}

// SetAuth replaces the cached identity wholesale.
func (s *Store) SetAuth(info auth.UserInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.IsAuthenticated = true
	s.state.UserInfo = &info
}

func (s *Store) ClearAuth() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.IsAuthenticated = false
	s.state.UserInfo = nil
}

func (s *Store) SetChecked() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.IsChecked = true
}
