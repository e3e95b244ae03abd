package app

import (
	"context"
	"sync"

	"hoteldesk/internal/adapters/observability"
	"hoteldesk/internal/domain"
)

// Session is the single source of truth for "is a user currently
// authenticated". It is constructed once by the composition root and injected
// wherever auth state is consumed; there is no ambient singleton.
//
// Until Init has run, Ready reports false and route guards must treat the
// session as still loading rather than unauthenticated.
type Session struct {
	auth   domain.AuthAPI
	tokens domain.TokenStore

	mu            sync.RWMutex
	ready         bool
	authenticated bool
}

func NewSession(auth domain.AuthAPI, tokens domain.TokenStore) *Session {
	return &Session{auth: auth, tokens: tokens}
}

// Init derives the initial auth state from the persisted token: present means
// authenticated. Runs once per process start, before the server accepts
// traffic.
func (s *Session) Init(ctx context.Context) error {
	tok, err := s.tokens.Token(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.authenticated = tok != ""
	s.ready = true
	s.mu.Unlock()
	return nil
}

func (s *Session) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// Login submits credentials and, on success, persists the returned token and
// flips the session to authenticated. On failure the error propagates and the
// session stays unauthenticated.
func (s *Session) Login(ctx context.Context, creds domain.Credentials) error {
	tok, err := s.auth.Login(ctx, creds)
	if err != nil {
		return err
	}
	if err := s.tokens.Save(ctx, tok.AccessToken); err != nil {
		return err
	}
	s.mu.Lock()
	s.authenticated = true
	s.mu.Unlock()
	observability.ObserveSession("login")
	return nil
}

// Logout clears the persisted token and the authenticated flag. No network
// call: the backend keeps no server-side session to tear down.
func (s *Session) Logout(ctx context.Context) error {
	err := s.tokens.Clear(ctx)
	s.mu.Lock()
	s.authenticated = false
	s.mu.Unlock()
	observability.ObserveSession("logout")
	return err
}

// HandleAuthFailure is the transport's 401 notification target. The transport
// has already cleared the stored token; this drops the in-memory flag so
// route guards send the user back to login.
func (s *Session) HandleAuthFailure() {
	s.mu.Lock()
	s.authenticated = false
	s.mu.Unlock()
}
