package stores

import (
	"context"
	"database/sql"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/msivanov/materialhub/internal/client/localdb"
	"github.com/msivanov/materialhub/internal/client/models"
	"github.com/msivanov/materialhub/internal/client/session"
	"github.com/msivanov/materialhub/internal/logging"
)

func newTestSession(t *testing.T) (*session.Session, *sql.DB) {
	t.Helper()
	ctx := context.Background()
	db, err := localdb.Open(ctx, filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sess, err := session.Load(ctx, db)
	require.NoError(t, err)
	return sess, db
}

func TestUserStoreLoginPersistsSession(t *testing.T) {
	ctx := context.Background()
	sess, db := newTestSession(t)
	fake := &fakeClient{
		loginFn: func(creds models.Credentials) (*models.LoginResponse, error) {
			return &models.LoginResponse{
				Access:  "access-token",
				Refresh: "refresh-token",
				User:    &models.User{ID: 7, Username: creds.Username},
			}, nil
		},
	}
	s := NewUserStore(fake, sess, nil)

	u, err := s.Login(ctx, models.Credentials{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, "alice", u.Username)
	require.Equal(t, "alice", fake.lastCreds.Username)
	require.True(t, s.IsAuthenticated())
	require.Equal(t, "access-token", sess.AccessToken())

	// A fresh session on the same database must see the persisted login.
	restored, err := session.Load(ctx, db)
	require.NoError(t, err)
	require.True(t, restored.IsAuthenticated())
	require.Equal(t, "refresh-token", restored.RefreshToken())
	require.EqualValues(t, 7, restored.User().ID)
}

func TestUserStoreLoginFailure(t *testing.T) {
	sess, _ := newTestSession(t)
	fake := &fakeClient{
		loginFn: func(models.Credentials) (*models.LoginResponse, error) { return nil, errFake },
	}
	s := NewUserStore(fake, sess, nil)

	_, err := s.Login(context.Background(), models.Credentials{Username: "alice"})
	require.Error(t, err)
	require.False(t, s.IsAuthenticated())
	require.Equal(t, "login failed", s.Error())
}

// Logout must clear local state synchronously even when the server call
// fails; the server outcome is ignored.
func TestUserStoreLogoutLocalFirst(t *testing.T) {
	ctx := context.Background()
	sess, db := newTestSession(t)
	fake := &fakeClient{
		loginFn: func(models.Credentials) (*models.LoginResponse, error) {
			return &models.LoginResponse{Access: "a", Refresh: "r", User: &models.User{ID: 1}}, nil
		},
		logoutErr: errFake,
	}
	s := NewUserStore(fake, sess, logging.NewSlogLogger(slog.Default()))
	_, err := s.Login(ctx, models.Credentials{Username: "alice"})
	require.NoError(t, err)

	s.Logout(ctx)

	require.Equal(t, 1, fake.logoutCalls)
	require.False(t, s.IsAuthenticated())
	require.Nil(t, s.User())

	restored, err := session.Load(ctx, db)
	require.NoError(t, err)
	require.False(t, restored.IsAuthenticated())
}

func TestUserStoreFetchProfileRequiresAuth(t *testing.T) {
	sess, _ := newTestSession(t)
	s := NewUserStore(&fakeClient{}, sess, nil)

	_, err := s.FetchProfile(context.Background())
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestUserStoreCheckAuth(t *testing.T) {
	ctx := context.Background()

	t.Run("token without profile triggers fetch", func(t *testing.T) {
		sess, _ := newTestSession(t)
		require.NoError(t, sess.SetAccessToken("tok"))
		fake := &fakeClient{userFn: func() (*models.User, error) {
			return &models.User{ID: 3, Username: "bob"}, nil
		}}
		s := NewUserStore(fake, sess, nil)

		require.True(t, s.CheckAuth(ctx))
		require.Equal(t, "bob", s.User().Username)
	})

	t.Run("stale token is logged out", func(t *testing.T) {
		sess, _ := newTestSession(t)
		require.NoError(t, sess.SetAccessToken("tok"))
		fake := &fakeClient{userFn: func() (*models.User, error) { return nil, errFake }}
		s := NewUserStore(fake, sess, nil)

		require.False(t, s.CheckAuth(ctx))
		require.False(t, s.IsAuthenticated())
	})

	t.Run("no token", func(t *testing.T) {
		sess, _ := newTestSession(t)
		s := NewUserStore(&fakeClient{}, sess, nil)
		require.False(t, s.CheckAuth(ctx))
	})
}

func TestUserStoreUpdateProfile(t *testing.T) {
	ctx := context.Background()
	sess, _ := newTestSession(t)
	require.NoError(t, sess.SetAccessToken("tok"))

	bio := "designer"
	fake := &fakeClient{updateFn: func(update models.ProfileUpdate) (*models.User, error) {
		require.NotNil(t, update.Bio)
		return &models.User{ID: 5, Bio: *update.Bio}, nil
	}}
	s := NewUserStore(fake, sess, nil)

	u, err := s.UpdateProfile(ctx, models.ProfileUpdate{Bio: &bio})
	require.NoError(t, err)
	require.Equal(t, "designer", u.Bio)
	require.Equal(t, "designer", s.User().Bio, "cache must be refreshed")
}

func TestUserStoreChangePassword(t *testing.T) {
	ctx := context.Background()
	sess, _ := newTestSession(t)
	require.NoError(t, sess.SetAccessToken("tok"))

	fake := &fakeClient{passwdErr: errFake}
	s := NewUserStore(fake, sess, nil)
	require.Error(t, s.ChangePassword(ctx, models.PasswordChange{OldPassword: "a", NewPassword: "b"}))

	fake.passwdErr = nil
	require.NoError(t, s.ChangePassword(ctx, models.PasswordChange{OldPassword: "a", NewPassword: "b"}))
}
