package service

import (
	"context"
	"encoding/json"

	"github.com/fieldos/fieldos-client-go/internal/domain"

	"go.uber.org/zap"
)

// Init runs the startup transition: read storage, optimistically adopt the
// cached user, then verify the stored token with the backend. With no
// cached credential it settles immediately, without any network call.
//
// Verification failure of any kind folds back to Unauthenticated and wipes
// both storage tiers; this is a best-effort background path, so the error
// is logged, never surfaced.
func (s *Session) Init(ctx context.Context) {
	s.mu.Lock()

	_, haveToken := s.creds.Token()
	rawUser, haveUser := s.creds.User()

	if !haveToken || !haveUser {
		// Half a credential pair must not outlive one cycle.
		if haveToken != haveUser {
			s.logger.Warn("session: partial credential record, clearing")
			s.creds.ClearAll()
		}
		s.state = SessionUnauthenticated
		s.user = nil
		s.mu.Unlock()
		return
	}

	var cached domain.User
	if err := json.Unmarshal(rawUser, &cached); err != nil {
		s.logger.Warn("session: stored user unreadable, clearing", zap.Error(err))
		s.creds.ClearAll()
		s.state = SessionUnauthenticated
		s.user = nil
		s.mu.Unlock()
		return
	}

	// Optimistic: show the cached identity while the backend confirms it.
	s.user = &cached
	s.state = SessionInitializing
	s.mu.Unlock()

	verified, err := s.api.Me(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.logger.Info("session: stored token rejected, starting unauthenticated", zap.Error(err))
		s.creds.ClearAll()
		s.user = nil
		s.state = SessionUnauthenticated
		return
	}

	// The server value wins, even when it differs from the cache.
	s.user = verified
	if raw, err := json.Marshal(verified); err == nil {
		s.creds.SetUser(raw)
	}
	s.state = SessionAuthenticated
	s.logger.Debug("session: restored", zap.String("email", verified.Email))
}

// Login authenticates and, on success, persists token and user together
// and enters Authenticated. On failure nothing changes and the error goes
// back to the caller for display. Safe to call repeatedly.
func (s *Session) Login(ctx context.Context, email, password string) (*domain.User, error) {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	user := resp.User
	raw, err := json.Marshal(&user)
	if err != nil {
		return nil, err
	}
	s.creds.SetCredentials(resp.AccessToken, raw)

	s.mu.Lock()
	s.user = &user
	s.state = SessionAuthenticated
	s.mu.Unlock()

	s.logger.Info("session: logged in", zap.String("email", user.Email), zap.String("role", user.Role))
	return &user, nil
}

// Logout clears both storage tiers and drops the user. Local-only and
// infallible: no backend call has to succeed, and calling it while already
// logged out is a no-op.
func (s *Session) Logout() {
	s.creds.ClearAll()

	s.mu.Lock()
	s.user = nil
	s.state = SessionUnauthenticated
	s.mu.Unlock()

	s.logger.Info("session: logged out")
}

// RefreshUser re-fetches the authoritative user and updates state and
// storage. Used after server-side attribute changes (onboarding, role
// edits) so flags are picked up without a full restart. Any failure leaves
// the previous user untouched and returns nil.
func (s *Session) RefreshUser(ctx context.Context) *domain.User {
	user, err := s.api.Me(ctx)
	if err != nil {
		s.logger.Debug("session: refresh failed, keeping current user", zap.Error(err))
		return nil
	}

	if raw, err := json.Marshal(user); err == nil {
		s.creds.SetUser(raw)
	}

	s.mu.Lock()
	s.user = user
	s.state = SessionAuthenticated
	s.mu.Unlock()

	return user
}
