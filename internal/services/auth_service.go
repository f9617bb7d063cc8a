package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/propmaint/backend/internal/auth"
	"github.com/propmaint/backend/internal/models"
)

type CredentialStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type AuthService struct {
	users      CredentialStore
	jwtSecret  string
	expiration time.Duration
	log        *zap.Logger
}

func NewAuthService(users CredentialStore, jwtSecret string, expiration time.Duration, log *zap.Logger) *AuthService {
	return &AuthService{users: users, jwtSecret: jwtSecret, expiration: expiration, log: log}
}

// Login verifies the credentials and issues a signed token. Unknown emails
// and bad passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		s.log.Warn("credential lookup failed", zap.Error(err))
		return nil, "", ErrUnauthorized
	}
	if u == nil || u.Status != models.UserStatusActive {
		return nil, "", ErrUnauthorized
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, "", ErrUnauthorized
	}

	token, err := auth.GenerateJWT(s.jwtSecret, u.ID, u.Email, s.expiration)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}
