package local

import (
	"context"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/ffmaxarena/arena-api/internal/domain/user"
	"github.com/ffmaxarena/arena-api/internal/platform/logging"
	"github.com/ffmaxarena/arena-api/internal/usecase"
	"github.com/golang-jwt/jwt/v4"
	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"
)

const issuer = "ffmaxarena-api"

// Config holds the single admin credential and the session signing key.
type Config struct {
	AdminEmail        string
	AdminPasswordHash string
	JWTSecret         string
	SessionTTL        time.Duration
}

// Provider authenticates the admin against a bcrypt hash and issues HS256
// session tokens.
type Provider struct {
	email      string
	hash       []byte
	secret     []byte
	sessionTTL time.Duration
	logger     *logging.Logger
	clock      clockwork.Clock
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func NewProvider(cfg Config, logger *logging.Logger, clock clockwork.Clock) (*Provider, error) {
	if strings.TrimSpace(cfg.AdminEmail) == "" {
		return nil, crerr.New("admin email is required")
	}
	if _, err := bcrypt.Cost([]byte(cfg.AdminPasswordHash)); err != nil {
		return nil, crerr.Wrap(err, "admin password hash")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, crerr.New("jwt secret must be at least 32 characters")
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 12 * time.Hour
	}
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Provider{
		email:      strings.ToLower(strings.TrimSpace(cfg.AdminEmail)),
		hash:       []byte(cfg.AdminPasswordHash),
		secret:     []byte(cfg.JWTSecret),
		sessionTTL: cfg.SessionTTL,
		logger:     logger,
		clock:      clock,
	}, nil
}

func (p *Provider) Login(ctx context.Context, email, password string) (user.Session, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	// Compare the hash even for an unknown email so both paths cost the same.
	hashErr := bcrypt.CompareHashAndPassword(p.hash, []byte(password))
	if normalized != p.email || hashErr != nil {
		p.logger.WarnContext(ctx, "admin login rejected", "email", normalized)
		return user.Session{}, fmt.Errorf("%w: invalid email or password", usecase.ErrUnauthorized)
	}

	now := p.clock.Now()
	expiresAt := now.Add(p.sessionTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: p.email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   p.email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return user.Session{}, crerr.Wrap(err, "sign session token")
	}

	return user.Session{
		Principal:   user.Principal{UserID: p.email, Email: p.email},
		AccessToken: signed,
		ExpiresAt:   expiresAt,
	}, nil
}

func (p *Provider) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: missing access token", usecase.ErrUnauthorized)
	}

	parsed := claims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	if _, err := parser.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return p.secret, nil
	}); err != nil {
		return user.Principal{}, fmt.Errorf("%w: invalid access token", usecase.ErrUnauthorized)
	}

	now := p.clock.Now()
	if !parsed.VerifyExpiresAt(now, true) || !parsed.VerifyIssuer(issuer, true) {
		return user.Principal{}, fmt.Errorf("%w: access token expired", usecase.ErrUnauthorized)
	}
	if !strings.EqualFold(parsed.Email, p.email) {
		p.logger.WarnContext(ctx, "access token for unknown admin", "email", parsed.Email)
		return user.Principal{}, fmt.Errorf("%w: unknown admin", usecase.ErrUnauthorized)
	}

	return user.Principal{UserID: parsed.Subject, Email: parsed.Email}, nil
}
