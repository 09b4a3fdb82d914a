package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/99minutos/credential-service/internal/core/domain"
)

// DefaultTokenTTL is the lifetime of an issued token.
const DefaultTokenTTL = time.Hour

// JWTService issues and verifies HS256 bearer tokens. It is safe for
// concurrent use; nothing is mutated after construction.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option customises a JWTService.
type Option func(*JWTService)

// WithClock overrides the time source used for issuing and verifying tokens.
func WithClock(now func() time.Time) Option {
	return func(s *JWTService) { s.now = now }
}

// NewJWTService returns domain.ErrConfiguration when secret is empty.
func NewJWTService(secret string, ttl time.Duration, opts ...Option) (*JWTService, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is not set", domain.ErrConfiguration)
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	s := &JWTService{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *JWTService) Issue(subject string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify accepts a token iff its signature matches, it carries a subject and
// the current time is strictly before its expiry.
func (s *JWTService) Verify(token string) (domain.CredentialClaim, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return domain.CredentialClaim{}, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
	if claims.Subject == "" {
		return domain.CredentialClaim{}, fmt.Errorf("%w: missing subject", domain.ErrTokenInvalid)
	}

	claim := domain.CredentialClaim{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		claim.IssuedAt = claims.IssuedAt.Time
	}
	return claim, nil
}
