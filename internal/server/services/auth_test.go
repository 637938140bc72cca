package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/cryptox"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeUsersRepo struct {
	byName map[string]*models.User
	byID   map[string]*models.User
	nextID int
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byName: map[string]*models.User{}, byID: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.nextID++
	u.ID = string(rune('a' + f.nextID - 1))
	f.byName[u.UserName] = u
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByUserName(ctx context.Context, name string) (*models.User, error) {
	if u, ok := f.byName[name]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

type fakeSessionsRepo struct {
	sessions  map[string]*models.Session
	createErr error
}

func newFakeSessionsRepo() *fakeSessionsRepo {
	return &fakeSessionsRepo{sessions: map[string]*models.Session{}}
}

func (f *fakeSessionsRepo) Create(ctx context.Context, s *models.Session) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.sessions[s.SessionID] = s
	return nil
}

func (f *fakeSessionsRepo) Find(ctx context.Context, sessionID string) (*models.Session, error) {
	if s, ok := f.sessions[sessionID]; ok {
		return s, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeSessionsRepo) Delete(ctx context.Context, sessionID string) error {
	delete(f.sessions, sessionID)
	return nil
}

func newAuthService() (*AuthService, *fakeUsersRepo, *fakeSessionsRepo) {
	ur := newFakeUsersRepo()
	sr := newFakeSessionsRepo()
	return NewAuthService(ur, sr), ur, sr
}

// --- tests ---

func TestRegister_StoresVerifiableDigest(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "pass1")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)

	require.True(t, cryptox.VerifyPassword(user.PasswordHash, "pass1"))
	require.False(t, cryptox.VerifyPassword(user.PasswordHash, "pass2"))
}

func TestRegister_DuplicateUser(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pass1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other")
	require.ErrorIs(t, err, common.ErrorUserAlreadyExists)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "pass1")
	require.NoError(t, err)

	user, err := svc.Login(ctx, "alice", "pass1")
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)

	_, err = svc.Login(ctx, "alice", "wrong")
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = svc.Login(ctx, "nobody", "pass1")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSessionRoundTrip(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "pass1")
	require.NoError(t, err)

	token, err := svc.CreateSession(ctx, user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := svc.ResolveSession(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	require.Equal(t, user.ID, resolved.ID)

	require.NoError(t, svc.DeleteSession(ctx, token))

	resolved, err = svc.ResolveSession(ctx, token)
	require.NoError(t, err)
	require.Nil(t, resolved)
}

func TestResolveSession_AnonymousPaths(t *testing.T) {
	svc, ur, sr := newAuthService()
	ctx := context.Background()

	// empty token
	u, err := svc.ResolveSession(ctx, "")
	require.NoError(t, err)
	require.Nil(t, u)

	// unknown token
	u, err = svc.ResolveSession(ctx, "no-such-token")
	require.NoError(t, err)
	require.Nil(t, u)

	// session whose user is gone
	sr.sessions["orphan"] = &models.Session{SessionID: "orphan", UserID: "ghost"}
	delete(ur.byID, "ghost")
	u, err = svc.ResolveSession(ctx, "orphan")
	require.NoError(t, err)
	require.Nil(t, u)
}

func TestDeleteSession_Idempotent(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	require.NoError(t, svc.DeleteSession(ctx, "never-existed"))
	require.NoError(t, svc.DeleteSession(ctx, "never-existed"))
}

func TestCreateSession_TokensAreUnique(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	seen := map[string]struct{}{}
	for i := 0; i < 50; i++ {
		token, err := svc.CreateSession(ctx, "u-1")
		require.NoError(t, err)
		if _, dup := seen[token]; dup {
			t.Fatalf("duplicate token after %d iterations", i)
		}
		seen[token] = struct{}{}
	}
}

func TestCreateSession_RepoError(t *testing.T) {
	svc, _, sr := newAuthService()
	sr.createErr = errors.New("db down")

	_, err := svc.CreateSession(context.Background(), "u-1")
	require.Error(t, err)
}
