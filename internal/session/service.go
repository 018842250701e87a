package session

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/ccaceres17/supercatalogue/internal/storage"
)

// Persistent store keys. Token and profile are always written and removed as
// a pair; a session is only valid when both are present.
const (
	tokenKey   = "token"
	profileKey = "user"
)

// Service owns the authenticated identity. It has two states: anonymous, and
// authenticated with a token and profile that are set and cleared together.
type Service struct {
	mu      sync.Mutex
	token   string
	profile *Profile

	store  storage.KV
	remote Authenticator
	lg     *zap.Logger
}

// NewService creates a session Service. Call Restore before first use to
// load any persisted session.
func NewService(store storage.KV, remote Authenticator, lg *zap.Logger) *Service {
	return &Service{
		store:  store,
		remote: remote,
		lg:     lg,
	}
}

// Restore loads the persisted token and profile. Unless both are present and
// the profile parses, the service stays anonymous. Restore never fails.
func (s *Service) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok, err := s.store.Get(tokenKey)
	if err != nil || !ok || token == "" {
		if err != nil {
			s.lg.Warn("Read token", zap.Error(err))
		}
		return
	}
	data, ok, err := s.store.Get(profileKey)
	if err != nil || !ok {
		if err != nil {
			s.lg.Warn("Read profile", zap.Error(err))
		}
		return
	}
	profile, err := decodeProfile(data)
	if err != nil {
		s.lg.Warn("Corrupt profile snapshot, staying anonymous", zap.Error(err))
		return
	}
	s.token = token
	s.profile = &profile
}

// Login verifies credentials against the remote store and establishes a
// session. The remote returns only a token, so the profile is synthesized
// locally from the username. A failed login leaves any existing session
// untouched.
func (s *Service) Login(ctx context.Context, username, password string) (*Profile, error) {
	token, err := s.remote.Login(ctx, username, password)
	if err != nil {
		return nil, errors.Wrap(err, "login")
	}

	profile := Profile{
		ID:       1,
		Username: username,
		Email:    username + "@example.com",
		Name:     Name{First: "Demo", Last: "User"},
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(tokenKey, token); err != nil {
		return nil, errors.Wrap(err, "persist token")
	}
	if err := s.store.Set(profileKey, encodeProfile(profile)); err != nil {
		// Keep the pair consistent: no profile, no token.
		if rmErr := s.store.Remove(tokenKey); rmErr != nil {
			s.lg.Warn("Remove token after failed profile write", zap.Error(rmErr))
		}
		return nil, errors.Wrap(err, "persist profile")
	}

	s.token = token
	s.profile = &profile
	return &profile, nil
}

// Register creates an account on the remote store and, on success, logs in
// with the same credentials to establish a session. A failed creation makes
// no login attempt.
func (s *Service) Register(ctx context.Context, u NewUser) (*Profile, error) {
	id, err := s.remote.RegisterUser(ctx, u)
	if err != nil {
		return nil, errors.Wrap(err, "register user")
	}
	s.lg.Info("Account created", zap.Int64("id", id), zap.String("username", u.Username))

	return s.Login(ctx, u.Username, u.Password)
}

// Logout clears the session from memory and from the store. Logging out
// while anonymous is a no-op.
func (s *Service) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.profile = nil

	if err := s.store.Remove(tokenKey); err != nil {
		return errors.Wrap(err, "remove token")
	}
	if err := s.store.Remove(profileKey); err != nil {
		return errors.Wrap(err, "remove profile")
	}
	return nil
}

// IsAuthenticated reports whether a session is established.
func (s *Service) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && s.profile != nil
}

// Current returns the authenticated profile, when there is one.
func (s *Service) Current() (Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return Profile{}, false
	}
	return *s.profile, true
}

// Token returns the session token, when there is one.
func (s *Service) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" || s.profile == nil {
		return "", false
	}
	return s.token, true
}

// CurrentUserID reports the authenticated user's id. It satisfies the cart
// package's Identity interface.
func (s *Service) CurrentUserID() (int64, bool) {
	p, ok := s.Current()
	if !ok {
		return 0, false
	}
	return p.ID, true
}
