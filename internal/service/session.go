package service

import (
	"sync"

	"github.com/fieldos/fieldos-client-go/internal/domain"
	"github.com/fieldos/fieldos-client-go/internal/port"

	"go.uber.org/zap"
)

// SessionState identifies where the session lifecycle currently is.
// Tests assert on state identity, not on field combinations.
type SessionState int

const (
	// SessionUnauthenticated: no user; also the fold-back state after any
	// verification failure.
	SessionUnauthenticated SessionState = iota
	// SessionInitializing: a cached user was loaded optimistically and the
	// stored token is being verified against the backend.
	SessionInitializing
	// SessionAuthenticated: the user value came from the backend.
	SessionAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case SessionInitializing:
		return "initializing"
	case SessionAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Session is the tab-lifetime authentication state: the current user, the
// lifecycle state, and the operations that mutate them. It is an explicit,
// constructed object; consumers receive it by injection and call Init once
// at startup.
type Session struct {
	mu    sync.Mutex
	state SessionState
	user  *domain.User

	api    port.AuthAPI
	creds  port.CredentialStore
	logger *zap.Logger
}

// NewSession creates the session in the Unauthenticated state. Missing
// dependencies are a wiring bug: fail loudly at construction, not with a
// silent nil somewhere downstream.
func NewSession(api port.AuthAPI, creds port.CredentialStore, logger *zap.Logger) *Session {
	if api == nil {
		panic("session: auth API is required")
	}
	if creds == nil {
		panic("session: credential store is required")
	}
	return &Session{
		state:  SessionUnauthenticated,
		api:    api,
		creds:  creds,
		logger: logger,
	}
}

// User returns the current user, or nil when unauthenticated.
func (s *Session) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Loading reports whether the startup verification is still in flight.
// True only between Init reading a cached credential and the backend
// verdict; never true afterwards.
func (s *Session) Loading() bool {
	return s.State() == SessionInitializing
}

// IsSuperAdmin derives the cross-tenant flag from the current user's role.
// Computed on every call so it can never go stale relative to the user.
func (s *Session) IsSuperAdmin() bool {
	return s.User().IsSuperAdmin()
}
