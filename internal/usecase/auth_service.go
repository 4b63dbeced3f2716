package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ffmaxarena/arena-api/internal/domain/user"
)

type AuthService struct {
	authenticator user.Authenticator
}

func NewAuthService(authenticator user.Authenticator) *AuthService {
	return &AuthService{authenticator: authenticator}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (user.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return user.Session{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	session, err := s.authenticator.Login(ctx, email, password)
	if err != nil {
		return user.Session{}, fmt.Errorf("login: %w", err)
	}
	return session, nil
}

func (s *AuthService) Verify(ctx context.Context, token string) (user.Principal, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Verify")
	defer span.End()

	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: missing bearer token", ErrUnauthorized)
	}

	principal, err := s.authenticator.VerifyAccessToken(ctx, token)
	if err != nil {
		return user.Principal{}, fmt.Errorf("verify access token: %w", err)
	}
	return principal, nil
}
