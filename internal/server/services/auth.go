// Package services implements the application services orchestrating
// credential checks, session resolution, and the note lifecycle on top of
// the repositories.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/cryptox"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/users"
)

// sessionTokenBytes gives 192 bits of entropy per token, unique with
// overwhelming probability.
const sessionTokenBytes = 24

// AuthService is the credential store and session manager: it creates and
// verifies users and issues, resolves, and revokes opaque session tokens.
type AuthService struct {
	users    users.Repository
	sessions sessions.Repository
}

func NewAuthService(users users.Repository, sessions sessions.Repository) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// Register creates a new user. The username is checked before insert;
// a taken name yields common.ErrorUserAlreadyExists.
func (s *AuthService) Register(ctx context.Context, userName, password string) (*models.User, error) {

	_, err := s.users.GetByUserName(ctx, userName)
	if err == nil {
		return nil, common.ErrorUserAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		UserName:     userName,
		PasswordHash: cryptox.HashPassword(password),
	}

	user, err = s.users.Create(ctx, user)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return user, nil
}

// Login verifies the credentials and returns the user. An unknown username
// is common.ErrorNotFound; a wrong password is common.ErrorUnauthorized,
// so the caller can report the two cases differently.
func (s *AuthService) Login(ctx context.Context, userName, password string) (*models.User, error) {

	user, err := s.users.GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	if !cryptox.VerifyPassword(user.PasswordHash, password) {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}

// CreateSession mints a random URL-safe token for the user and persists
// the pairing. The token is the credential the client stores in a cookie.
func (s *AuthService) CreateSession(ctx context.Context, userID string) (string, error) {

	token, err := common.MakeRandHexString(sessionTokenBytes)
	if err != nil {
		return "", fmt.Errorf("token generation error: %w", err)
	}

	if err := s.sessions.Create(ctx, &models.Session{SessionID: token, UserID: userID}); err != nil {
		return "", err
	}

	return token, nil
}

// ResolveSession returns the user owning the session token. A missing
// session, or a session whose user no longer exists, resolves to
// (nil, nil): that is the anonymous path, not a failure.
func (s *AuthService) ResolveSession(ctx context.Context, sessionID string) (*models.User, error) {
	if sessionID == "" {
		return nil, nil
	}

	session, err := s.sessions.Find(ctx, sessionID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, err
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

// DeleteSession revokes a session token. Revoking a token that does not
// exist is a no-op.
func (s *AuthService) DeleteSession(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}
