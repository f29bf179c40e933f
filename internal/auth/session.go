package auth

import (
	"fmt"
	"sync"

	"avaliaccess/internal/domain"
	"avaliaccess/internal/eventbus"
)

// Session is the process-wide auth state: the bearer token and, once fetched, its user.
// The persisted copy is written before the in-memory copy; a failed write leaves both unchanged.
type Session struct {
	mu    sync.RWMutex
	token string
	user  *domain.UserProfile
	store Store
	bus   eventbus.EventBus
}

// NewSession reads the persisted token once
func NewSession(store Store, bus eventbus.EventBus) (*Session, error) {
	if bus == nil {
		bus = eventbus.NopBus{}
	}
	token, err := store.Load()
	if err != nil {
		return &Session{store: store, bus: bus}, fmt.Errorf("failed to load session: %w", err)
	}
	return &Session{token: token, store: store, bus: bus}, nil
}

// Token returns the current token, "" when logged out. It satisfies api.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the profile of the logged-in user, nil when unknown
func (s *Session) User() *domain.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// LoggedIn reports whether a token is held
func (s *Session) LoggedIn() bool {
	return s.Token() != ""
}

// SetToken stores a new token and forgets the previous user
func (s *Session) SetToken(token string) error {
	if token == "" {
		return s.Clear()
	}
	s.mu.Lock()
	if err := s.store.Save(token); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to persist token: %w", err)
	}
	s.token = token
	s.user = nil
	s.mu.Unlock()

	s.bus.Publish(eventbus.LoggedInEvent{})
	return nil
}

// SetUser records the profile belonging to the current token
func (s *Session) SetUser(user *domain.UserProfile) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	if user != nil {
		s.bus.Publish(eventbus.LoggedInEvent{User: user})
	}
}

// Clear drops the token and user
func (s *Session) Clear() error {
	s.mu.Lock()
	if err := s.store.Clear(); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to clear token: %w", err)
	}
	had := s.token != ""
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if had {
		s.bus.Publish(eventbus.LoggedOutEvent{})
	}
	return nil
}
