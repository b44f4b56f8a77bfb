package stores

import (
	"context"
	"fmt"
	"sync"

	"github.com/msivanov/materialhub/internal/client/api"
	"github.com/msivanov/materialhub/internal/client/models"
	"github.com/msivanov/materialhub/internal/client/session"
	"github.com/msivanov/materialhub/internal/logging"
)

// UserStore owns authentication and profile state. The token pair and the
// cached profile live in the injected Session; the store adds the
// operations and the in-flight guard on top.
type UserStore struct {
	client  api.Client
	session *session.Session
	log     logging.Logger

	mu        sync.Mutex
	loading   bool
	lastError string
}

func NewUserStore(client api.Client, sess *session.Session, log logging.Logger) *UserStore {
	return &UserStore{client: client, session: sess, log: log}
}

func (s *UserStore) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return ErrOperationInProgress
	}
	s.loading = true
	s.lastError = ""
	return nil
}

func (s *UserStore) end() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

// Login authenticates and persists the session. On failure the error
// message is taken from the server envelope when one exists, otherwise the
// raw transport error is surfaced.
func (s *UserStore) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	resp, err := s.client.Login(ctx, creds)
	if err != nil {
		s.setError(userMessage(err, "login failed"))
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := s.session.SaveLogin(ctx, resp.Access, resp.Refresh, resp.User); err != nil {
		s.setError("failed to persist session")
		return nil, fmt.Errorf("save session: %w", err)
	}
	return resp.User, nil
}

// Register creates a new account. It does not log the user in.
func (s *UserStore) Register(ctx context.Context, reg models.Registration) (*models.RegisterResponse, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	resp, err := s.client.Register(ctx, reg)
	if err != nil {
		s.setError(userMessage(err, "registration failed"))
		return nil, fmt.Errorf("register: %w", err)
	}
	return resp, nil
}

// Logout is local-first: the in-memory and persisted session are cleared
// synchronously, then the server is notified best-effort and the outcome
// of that call is ignored.
func (s *UserStore) Logout(ctx context.Context) {
	if err := s.session.Clear(); err != nil && s.log != nil {
		s.log.Warn(ctx, "clearing persisted session failed", "err", err)
	}

	if err := s.client.Logout(ctx); err != nil && s.log != nil {
		s.log.Warn(ctx, "server logout failed, ignored", "err", err)
	}
}

// FetchProfile loads the current user's profile and caches it.
// A 401 is handled by the HTTP client (session cleared there); any other
// failure leaves the session untouched.
func (s *UserStore) FetchProfile(ctx context.Context) (*models.User, error) {
	if !s.session.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	u, err := s.client.CurrentUser(ctx)
	if err != nil {
		s.setError(userMessage(err, "failed to fetch profile"))
		return nil, fmt.Errorf("fetch profile: %w", err)
	}

	if err := s.session.SetUser(ctx, u); err != nil && s.log != nil {
		s.log.Warn(ctx, "caching profile failed", "err", err)
	}
	return u, nil
}

// UpdateProfile applies a partial profile change and refreshes the cache.
func (s *UserStore) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	if !s.session.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	u, err := s.client.UpdateProfile(ctx, update)
	if err != nil {
		s.setError(userMessage(err, "failed to update profile"))
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if err := s.session.SetUser(ctx, u); err != nil && s.log != nil {
		s.log.Warn(ctx, "caching profile failed", "err", err)
	}
	return u, nil
}

// ChangePassword changes the account password.
func (s *UserStore) ChangePassword(ctx context.Context, change models.PasswordChange) error {
	if !s.session.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	if err := s.client.ChangePassword(ctx, change); err != nil {
		s.setError(userMessage(err, "failed to change password"))
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

// CheckAuth reports whether the user is logged in. When a token is present
// without a cached profile it fetches the profile; a failed fetch means
// the token is stale, so the session is logged out.
func (s *UserStore) CheckAuth(ctx context.Context) bool {
	if s.session.IsAuthenticated() && s.session.User() == nil {
		if _, err := s.FetchProfile(ctx); err != nil {
			s.Logout(ctx)
			return false
		}
		return true
	}
	return s.session.User() != nil
}

func (s *UserStore) IsAuthenticated() bool {
	return s.session.IsAuthenticated()
}

// User returns the cached profile, or nil when none is cached.
func (s *UserStore) User() *models.User {
	return s.session.User()
}

func (s *UserStore) setError(msg string) {
	s.mu.Lock()
	s.lastError = msg
	s.mu.Unlock()
	if s.log != nil {
		s.log.Error(context.Background(), "user store error", "msg", msg)
	}
}

func (s *UserStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""
}

func (s *UserStore) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

func (s *UserStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
