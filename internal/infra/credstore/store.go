// Package credstore persists the bearer token and serialized user behind a
// uniform get/set/clear interface. Two tiers exist: an in-memory tier that
// lives for the process (session mode) and an encrypted file tier that
// survives restarts (durable mode). Which tier receives writes is chosen
// once at startup; ClearAll always wipes both so that switching the
// persistence mode between runs can never resurrect a stale credential.
package credstore

import (
	"sync"

	"github.com/fieldos/fieldos-client-go/internal/config"
	"go.uber.org/zap"
)

// Fixed logical keys, shared by both tiers.
const (
	tokenKey = "fieldos_token"
	userKey  = "fieldos_user"
)

// tier is one storage backend holding the full credential record.
type tier interface {
	name() string
	load() (map[string][]byte, bool)
	store(m map[string][]byte)
	wipe()
}

// Store is the credential store over the configured active tier.
type Store struct {
	mu     sync.Mutex
	active tier
	tiers  []tier
	logger *zap.Logger
}

// New builds a store with both tiers constructed. cfg.PersistMode selects
// which one receives writes.
func New(cfg *config.Config, logger *zap.Logger) *Store {
	mem := newMemoryTier()
	file := newFileTier(cfg.StateDir, logger)

	s := &Store{
		tiers:  []tier{mem, file},
		logger: logger,
	}
	if cfg.PersistMode == config.PersistSession {
		s.active = mem
	} else {
		s.active = file
	}
	logger.Debug("credential store ready", zap.String("tier", s.active.name()))
	return s
}

// Token returns the stored bearer token, if any.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.active.load()
	if !ok {
		return "", false
	}
	v, ok := m[tokenKey]
	if !ok || len(v) == 0 {
		return "", false
	}
	return string(v), true
}

// SetToken stores the bearer token in the active tier.
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.update(func(m map[string][]byte) {
		m[tokenKey] = []byte(token)
	})
}

// User returns the serialized user, if any.
func (s *Store) User() ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.active.load()
	if !ok {
		return nil, false
	}
	v, ok := m[userKey]
	if !ok || len(v) == 0 {
		return nil, false
	}
	return v, true
}

// SetUser stores the serialized user in the active tier.
func (s *Store) SetUser(raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.update(func(m map[string][]byte) {
		m[userKey] = raw
	})
}

// SetCredentials writes token and user as a single record so the pair is
// never observable half-written.
func (s *Store) SetCredentials(token string, user []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.update(func(m map[string][]byte) {
		m[tokenKey] = []byte(token)
		m[userKey] = user
	})
}

// ClearAll removes the credential record from every tier, not just the
// active one.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tiers {
		t.wipe()
	}
}

// update applies fn to the active tier's record read-modify-write.
// Caller holds s.mu.
func (s *Store) update(fn func(map[string][]byte)) {
	m, ok := s.active.load()
	if !ok {
		m = make(map[string][]byte)
	}
	fn(m)
	s.active.store(m)
}
