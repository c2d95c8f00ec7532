/*
Package auth contains the client-side session state and bearer-token handling.

This file defines the Session struct, the single process-wide authority for
"who is logged in". Every other component reads it; it is mutated only by
Initialize, Login, Logout, and the global authentication-failure hook.
*/
package auth

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"learnhub/internal/app/user"
	"learnhub/internal/pkg/logx"
)

// ProfileFetcher validates a bearer token by fetching the profile it belongs to.
// The user service implements it.
type ProfileFetcher interface {
	Profile(ctx context.Context) (*user.User, error)
}

// AuthWatcher is the slice of the shared client the session needs: registration
// of the hook fired when any response reports an authentication failure.
type AuthWatcher interface {
	OnAuthFailure(fn func())
}

// Session holds process-wide authentication state.
// Invariant: authenticated implies a non-nil user and a stored token.
type Session struct {
	store    TokenStore
	profiles ProfileFetcher

	mu            sync.RWMutex
	currentUser   *user.User
	authenticated bool

	logger zerolog.Logger
}

// NewSession constructs the session and wires it into the shared client's
// authentication-failure hook, so a 401 from any in-flight request resets the
// session no matter which component issued the call.
func NewSession(store TokenStore, profiles ProfileFetcher, watcher AuthWatcher) *Session {
	s := &Session{
		store:    store,
		profiles: profiles,
		logger:   logx.Logger().With().Str("component", "session").Logger(),
	}

	watcher.OnAuthFailure(func() {
		s.logger.Warn().Msg("Session invalidated by authentication failure.")
		s.reset()
	})

	return s
}

// Initialize establishes the session from a persisted token, if one exists.
// On any failure (network, rejection, malformed response) the token is
// discarded and the session stays unauthenticated; Initialize itself only
// errors when no recovery is possible, which currently never happens.
// The application blocks on this before running any command.
func (s *Session) Initialize(ctx context.Context) error {
	token := s.store.Token()
	if token == "" {
		s.logger.Debug().Msg("No persisted token. Starting unauthenticated.")
		return nil
	}

	profile, err := s.profiles.Profile(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Persisted token rejected. Discarding it.")
		if clearErr := s.store.Clear(); clearErr != nil {
			s.logger.Error().Err(clearErr).Msg("Failed to discard persisted token")
		}
		s.reset()
		return nil
	}

	s.set(profile)
	s.logger.Info().Str("email", profile.Email).Msg("Session restored from persisted token.")
	return nil
}

// Login persists the token, validates it by fetching the profile, and reports
// success. On failure the token is discarded so the session never holds a
// token without a validated user; callers get false instead of an error so
// they can show inline feedback.
func (s *Session) Login(ctx context.Context, token string) bool {
	if err := s.store.Save(token); err != nil {
		s.logger.Error().Err(err).Msg("Failed to persist token")
		return false
	}

	profile, err := s.profiles.Profile(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Login failed. Discarding token.")
		if clearErr := s.store.Clear(); clearErr != nil {
			s.logger.Error().Err(clearErr).Msg("Failed to discard token")
		}
		s.reset()
		return false
	}

	s.set(profile)
	s.logger.Info().Str("email", profile.Email).Msg("Signed in.")
	return true
}

// Logout clears the persisted token and resets the in-memory state.
// The contract is purely local; no platform call is made.
func (s *Session) Logout() {
	if err := s.store.Clear(); err != nil {
		s.logger.Error().Err(err).Msg("Failed to clear persisted token")
	}
	s.reset()
	s.logger.Info().Msg("Signed out.")
}

// IsAuthenticated reports whether a validated session is established.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// CurrentUser returns a copy of the signed-in user, or nil when unauthenticated.
func (s *Session) CurrentUser() *user.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.currentUser == nil {
		return nil
	}
	copied := *s.currentUser
	return &copied
}

// Token returns the persisted bearer token, or "" when none is stored.
func (s *Session) Token() string {
	return s.store.Token()
}

// set installs a validated user, flipping the session to authenticated.
func (s *Session) set(profile *user.User) {
	s.mu.Lock()
	s.currentUser = profile
	s.authenticated = true
	s.mu.Unlock()
}

// reset drops the in-memory state. The persisted token is handled by the
// caller: Logout and the 401 path clear it, failed logins already did.
func (s *Session) reset() {
	s.mu.Lock()
	s.currentUser = nil
	s.authenticated = false
	s.mu.Unlock()
}
