package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/mtodo/internal/model"
	appErr "github.com/xxxsen/mtodo/internal/pkg/errors"
	"github.com/xxxsen/mtodo/internal/pkg/password"
	"github.com/xxxsen/mtodo/internal/pkg/timeutil"
)

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

type AuthService struct {
	users  UserStore
	tokens TokenIssuer
}

func NewAuthService(users UserStore, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func checkCredentials(email, plainPassword string) error {
	if email == "" {
		return appErr.Required("email")
	}
	if plainPassword == "" {
		return appErr.Required("password")
	}
	return nil
}

// Signup creates a user. It does not issue a token.
func (s *AuthService) Signup(ctx context.Context, email, plainPassword string) (*model.User, error) {
	if err := checkCredentials(email, plainPassword); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, appErr.ErrConflict
	} else if !appErr.IsNotFound(err) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	hash, err := password.Hash(plainPassword)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return nil, appErr.Malformed("password")
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := timeutil.NowUnixMilli()
	user := &model.User{
		ID:           newID(),
		Email:        email,
		PasswordHash: hash,
		Ctime:        now,
		Mtime:        now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if appErr.IsConflict(err) {
			return nil, appErr.ErrConflict
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	logutil.GetLogger(ctx).Info("user signed up", zap.String("user_id", user.ID))
	return user, nil
}

// Signin reports ErrUnauthorized for both an unknown email and a wrong
// password.
func (s *AuthService) Signin(ctx context.Context, email, plainPassword string) (*model.User, string, error) {
	if err := checkCredentials(email, plainPassword); err != nil {
		return nil, "", err
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil, "", appErr.ErrUnauthorized
		}
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, "", appErr.ErrUnauthorized
		}
		return nil, "", fmt.Errorf("compare password: %w", err)
	}
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}
