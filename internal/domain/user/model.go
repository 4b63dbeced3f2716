package user

import (
	"context"
	"time"
)

// Principal is the authenticated admin behind a request.
type Principal struct {
	UserID string
	Email  string
}

// Session is issued on a successful password login.
type Session struct {
	Principal   Principal
	AccessToken string
	ExpiresAt   time.Time
}

// Authenticator exchanges credentials for a session and verifies tokens.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (Session, error)
	VerifyAccessToken(ctx context.Context, token string) (Principal, error)
}
