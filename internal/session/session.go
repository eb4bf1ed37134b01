// Package session owns the authenticated user state for the process.
// The Store is the single source of truth for "who is logged in": it
// persists the session across runs and drives the API client's
// Authorization header as a side effect of every transition.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/bliic/bliic/internal/api"
	"github.com/bliic/bliic/internal/model"
)

// Session is the in-memory record of the authenticated user. A session is
// either fully populated with a non-empty token or absent entirely; there
// is no partial state.
type Session struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// Authenticator is the slice of the API client the store drives: the login
// call plus control of the shared Authorization header.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*api.LoginResponse, error)
	SetToken(token string)
	ClearToken()
}

// Store holds the current session. All transitions replace the session
// wholesale; individual fields are never mutated in place.
type Store struct {
	storage Storage
	client  Authenticator
	logger  *slog.Logger

	mu      sync.RWMutex
	current *Session

	loginInFlight atomic.Bool
}

// NewStore creates a Store. It starts anonymous; call Restore once at
// startup to pick up a persisted session.
func NewStore(storage Storage, client Authenticator, logger *slog.Logger) *Store {
	return &Store{
		storage: storage,
		client:  client,
		logger:  logger.With("component", "session.store"),
	}
}

// Restore loads a persisted session at startup. Missing, malformed, or
// incomplete records leave the store anonymous and are at most logged;
// restore never fails in a way the caller has to handle. Corrupt records
// are cleared so the next run starts clean.
func (s *Store) Restore() {
	data, err := s.storage.Load()
	if err != nil {
		if !errors.Is(err, ErrNoSession) {
			s.logger.Debug("session restore skipped", "error", err)
		}
		return
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		s.logger.Debug("discarding corrupt session record", "error", err)
		_ = s.storage.Clear()
		return
	}
	if !valid(&sess) {
		s.logger.Debug("discarding incomplete session record")
		_ = s.storage.Clear()
		return
	}
	normalize(&sess)

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()
	s.client.SetToken(sess.Token)

	s.logger.Debug("session restored", "user_id", sess.User.ID)
}

// Login authenticates against the remote API. On success the new session
// is persisted, installed as current, and its token applied to the shared
// client. On failure the store is left exactly as it was and the error is
// an *api.AuthError carrying a display-ready message. A context cancelled
// mid-flight (caller torn down) also leaves the store untouched.
func (s *Store) Login(ctx context.Context, email, password string) (*Session, error) {
	s.loginInFlight.Store(true)
	defer s.loginInFlight.Store(false)

	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sess := &Session{User: resp.User, Token: resp.AccessToken}
	normalize(sess)

	if data, err := json.Marshal(sess); err == nil {
		if err := s.storage.Save(data); err != nil {
			// The session still works for this run; it just won't survive it.
			s.logger.Warn("failed to persist session", "error", err)
		}
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	s.client.SetToken(sess.Token)

	s.logger.Debug("logged in", "user_id", sess.User.ID, "plan", sess.User.Plan)

	out := *sess
	return &out, nil
}

// Adopt installs a session produced by an out-of-band auth flow, such as
// registration, with the same persistence and header side effects as Login.
// An incomplete record is rejected so the all-or-nothing invariant holds.
func (s *Store) Adopt(user model.User, token string) (*Session, error) {
	sess := &Session{User: user, Token: token}
	if !valid(sess) {
		return nil, errors.New("incomplete session")
	}
	normalize(sess)

	if data, err := json.Marshal(sess); err == nil {
		if err := s.storage.Save(data); err != nil {
			s.logger.Warn("failed to persist session", "error", err)
		}
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	s.client.SetToken(sess.Token)

	out := *sess
	return &out, nil
}

// Logout clears the current session, the persisted record, and the shared
// client's Authorization header. Purely local and idempotent: no network
// call, and logging out while anonymous is a no-op.
func (s *Store) Logout() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	s.client.ClearToken()
	if err := s.storage.Clear(); err != nil {
		s.logger.Warn("failed to clear persisted session", "error", err)
	}
}

// CurrentUser returns a read-only view of the logged-in user.
// The second return is false while anonymous.
func (s *Store) CurrentUser() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return model.User{}, false
	}
	return s.current.User, true
}

// IsAuthenticated returns true iff a session is present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// Token returns the current bearer token, or empty while anonymous.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// LoginInFlight reports whether a Login call is currently pending, so a
// caller can disable resubmission.
func (s *Store) LoginInFlight() bool {
	return s.loginInFlight.Load()
}

// valid checks the all-or-nothing session invariant.
func valid(sess *Session) bool {
	return sess.Token != "" && sess.User.ID != ""
}

// normalize fills server-omitted fields with their defaults.
func normalize(sess *Session) {
	sess.User.Role = sess.User.EffectiveRole()
	if sess.User.Plan == "" {
		sess.User.Plan = model.PlanFree
	}
}
