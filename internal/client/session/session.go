// Package session owns the client's authentication state: the bearer token
// pair and the cached user profile, mirrored in memory and persisted in the
// local store under fixed keys. It is created on successful login and
// cleared on logout or an unrecoverable 401.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/msivanov/materialhub/internal/client/localstore"
	"github.com/msivanov/materialhub/internal/client/models"
	"github.com/msivanov/materialhub/internal/dbx"
)

// Fixed local-storage keys. Renaming any of them invalidates sessions
// persisted by earlier builds.
const (
	KeyAuthToken    = "auth_token"
	KeyRefreshToken = "refresh_token"
	KeyAuthUser     = "auth_user"
)

// Session holds the token pair and cached profile. All methods are safe
// for concurrent use; the persisted copy is last-writer-wins.
type Session struct {
	db *sql.DB

	mu      sync.RWMutex
	access  string
	refresh string
	user    *models.User
}

// Load restores a session from the local store. A missing token yields an
// empty, unauthenticated session, not an error.
func Load(ctx context.Context, db *sql.DB) (*Session, error) {
	s := &Session{db: db}
	repo := localstore.NewSQLiteRepository(db)

	access, err := repo.Get(ctx, KeyAuthToken)
	if err != nil {
		return nil, fmt.Errorf("load access token: %w", err)
	}
	refresh, err := repo.Get(ctx, KeyRefreshToken)
	if err != nil {
		return nil, fmt.Errorf("load refresh token: %w", err)
	}
	rawUser, err := repo.Get(ctx, KeyAuthUser)
	if err != nil {
		return nil, fmt.Errorf("load cached user: %w", err)
	}

	s.access = string(access)
	s.refresh = string(refresh)
	if len(rawUser) > 0 {
		var u models.User
		if err := json.Unmarshal(rawUser, &u); err == nil {
			s.user = &u
		}
		// A corrupt cached profile is not fatal: CheckAuth refetches it.
	}
	return s, nil
}

func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthenticated reports whether a token is present. The session counts
// as authenticated before the profile is fetched.
func (s *Session) IsAuthenticated() bool {
	return s.AccessToken() != ""
}

// SaveLogin stores the full token pair and profile in one transaction, so
// the persisted session is either complete or absent.
func (s *Session) SaveLogin(ctx context.Context, access, refresh string, user *models.User) error {
	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := localstore.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeyAuthToken, []byte(access)); err != nil {
			return err
		}
		if err := repo.Set(ctx, KeyRefreshToken, []byte(refresh)); err != nil {
			return err
		}
		return repo.Set(ctx, KeyAuthUser, rawUser)
	})
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.access = access
	s.refresh = refresh
	s.user = user
	s.mu.Unlock()
	return nil
}

// SetAccessToken replaces the access token after a refresh, keeping the
// refresh token and profile.
func (s *Session) SetAccessToken(token string) error {
	repo := localstore.NewSQLiteRepository(s.db)
	if err := repo.Set(context.Background(), KeyAuthToken, []byte(token)); err != nil {
		return err
	}

	s.mu.Lock()
	s.access = token
	s.mu.Unlock()
	return nil
}

// SetUser updates the cached profile after a fetch or profile update.
func (s *Session) SetUser(ctx context.Context, user *models.User) error {
	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	repo := localstore.NewSQLiteRepository(s.db)
	if err := repo.Set(ctx, KeyAuthUser, rawUser); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

// Clear wipes both the in-memory and the persisted session. The in-memory
// copy is cleared even if the persistence layer fails, so logout always
// takes effect locally.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.access = ""
	s.refresh = ""
	s.user = nil
	s.mu.Unlock()

	repo := localstore.NewSQLiteRepository(s.db)
	ctx := context.Background()
	for _, key := range []string{KeyAuthToken, KeyRefreshToken, KeyAuthUser} {
		if err := repo.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
