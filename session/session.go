// Package session holds the authenticated user's identity and bearer
// credential, drives the login, registration, logout and profile-refresh
// flows, and persists itself so a new process starts in the same state
// the previous one ended in.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/s0up4200/cinectl/cinemaguide"
)

// placeholderUser is what an anonymous session reports instead of nil.
var placeholderUser = cinemaguide.User{Name: "User"}

// Outcome is the structured result of a login or registration attempt.
// Operations never return a Go error for transport or business failures;
// the failure text lands in Message instead.
type Outcome struct {
	Success bool
	Message string
	User    *cinemaguide.User
}

// Session is the session state container. It is in one of two states:
// anonymous (no credential held) or authenticated (credential + user).
type Session struct {
	mu     sync.Mutex
	api    *cinemaguide.Client
	store  *Store
	logger zerolog.Logger

	user        cinemaguide.User
	token       string
	authorized  bool
	loading     bool
	regComplete bool
	lastErr     string
}

// New builds a session restored from the store. A missing or unreadable
// user record falls back to the anonymous placeholder; restore never
// fails.
func New(api *cinemaguide.Client, store *Store, logger zerolog.Logger) *Session {
	s := &Session{
		api:    api,
		store:  store,
		logger: logger,
		user:   placeholderUser,
	}
	s.restore()
	return s
}

// restore rebuilds in-memory state from the persisted record.
func (s *Session) restore() {
	s.token = s.store.Get(keyToken)
	s.authorized = s.store.Get(keyAuthorized) == "true"

	if raw := s.store.Get(keyUser); raw != "" {
		var user cinemaguide.User
		if err := json.Unmarshal([]byte(raw), &user); err == nil {
			s.user = user
		} else {
			s.logger.Warn().Err(err).Msg("Stored user record is unreadable, using placeholder")
		}
	}
}

// Login authenticates against the API and, on success, transitions the
// session to authenticated and persists the credential and user.
func (s *Session) Login(ctx context.Context, email, password string) Outcome {
	if email == "" || password == "" {
		return s.failure("email and password are required")
	}

	s.setLoading(true)
	defer s.setLoading(false)

	result, err := s.api.Login(ctx, cinemaguide.Credentials{Email: email, Password: password})
	if err != nil {
		return s.failure(cinemaguide.ErrorMessage(err))
	}
	if !result.OK {
		return s.failure(result.Message)
	}

	user := s.persist(result.User, result.Token)
	s.logger.Info().Str("email", email).Msg("Logged in")
	return Outcome{Success: true, User: &user}
}

// Register creates a new account. A successful creation without an issued
// credential is still a success: the session stays anonymous but
// RegistrationComplete reports true so the caller can prompt for login.
func (s *Session) Register(ctx context.Context, input cinemaguide.RegisterInput) Outcome {
	if input.Email == "" || input.Password == "" {
		return s.failure("email and password are required")
	}

	s.setLoading(true)
	defer s.setLoading(false)

	result, err := s.api.Register(ctx, input)
	if err != nil {
		return s.failure(cinemaguide.ErrorMessage(err))
	}
	if !result.OK {
		return s.failure(result.Message)
	}

	s.mu.Lock()
	s.regComplete = true
	s.lastErr = ""
	s.mu.Unlock()

	if result.Token != "" || result.User.HasIdentity() {
		user := s.persist(result.User, result.Token)
		return Outcome{Success: true, User: &user}
	}

	s.logger.Info().Str("email", input.Email).Msg("Registration complete, credential not issued")
	return Outcome{Success: true, Message: "registration complete, please log in"}
}

// Logout notifies the server, then unconditionally clears local state.
// The server error, if any, is returned so the caller can decide whether
// to surface it.
func (s *Session) Logout(ctx context.Context) error {
	err := s.api.Logout(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Logout request failed, clearing local session anyway")
	}
	s.Clear()
	return err
}

// RefreshProfile overwrites the held user from the profile endpoint
// without touching the credential.
func (s *Session) RefreshProfile(ctx context.Context) (*cinemaguide.User, error) {
	user, err := s.api.Profile(ctx)
	if err != nil {
		s.recordError(cinemaguide.ErrorMessage(err))
		return nil, err
	}

	s.mu.Lock()
	s.user = *user
	s.lastErr = ""
	s.mu.Unlock()

	if data, err := json.Marshal(user); err == nil {
		if err := s.store.Set(keyUser, string(data)); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to persist refreshed profile")
		}
	}

	copied := *user
	return &copied, nil
}

// Clear drops the credential and user locally and from the store.
func (s *Session) Clear() {
	s.mu.Lock()
	s.token = ""
	s.user = placeholderUser
	s.authorized = false
	s.mu.Unlock()

	if err := s.store.Delete(keyToken, keyUser, keyAuthorized); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to clear persisted session")
	}
}

// persist transitions to authenticated, mirrors state into the store and
// returns the user the session now holds.
func (s *Session) persist(user *cinemaguide.User, token string) cinemaguide.User {
	s.mu.Lock()
	if token != "" {
		s.token = token
	}
	if user != nil {
		s.user = *user
	}
	s.authorized = true
	s.lastErr = ""
	held := s.user
	s.mu.Unlock()

	if token != "" {
		if err := s.store.Set(keyToken, token); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to persist credential")
		}
	}
	if user != nil {
		if data, err := json.Marshal(user); err == nil {
			if err := s.store.Set(keyUser, string(data)); err != nil {
				s.logger.Warn().Err(err).Msg("Failed to persist user")
			}
		}
	}
	if err := s.store.Set(keyAuthorized, "true"); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to persist authorized flag")
	}

	return held
}

func (s *Session) failure(message string) Outcome {
	s.recordError(message)
	return Outcome{Message: message}
}

func (s *Session) recordError(message string) {
	s.mu.Lock()
	s.lastErr = message
	s.mu.Unlock()
	s.logger.Error().Str("error", message).Msg("Session operation failed")
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// User returns the held user, or the anonymous placeholder.
func (s *Session) User() cinemaguide.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Token returns the held credential, or "" when anonymous.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Authorized reports whether the session is authenticated.
func (s *Session) Authorized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authorized
}

// Loading reports whether a login or registration call is in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// RegistrationComplete reports whether a registration succeeded during
// this session's lifetime.
func (s *Session) RegistrationComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regComplete
}

// LastError returns the most recent failure message, or "".
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
