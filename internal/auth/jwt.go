// AngelaMos | 2026
// jwt.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/carterperez-dev/heritage-museum/internal/config"
	"github.com/carterperez-dev/heritage-museum/internal/core"
	"github.com/carterperez-dev/heritage-museum/internal/middleware"
)

const ClaimUserID = "id"

// TokenManager issues and validates HS256 bearer tokens. Tokens are
// stateless: nothing is stored, nothing can be revoked before exp.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

type TokenOption func(*TokenManager)

func WithClock(now func() time.Time) TokenOption {
	return func(m *TokenManager) {
		m.now = now
	}
}

func NewTokenManager(
	cfg config.JWTConfig,
	opts ...TokenOption,
) (*TokenManager, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret is required")
	}

	m := &TokenManager{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    cfg.AccessTokenExpire,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs the given claims with iat and exp added. Registered claim
// names such as "sub" are accepted in claims. A ttl of zero or less
// produces a token that is already expired.
func (m *TokenManager) Issue(
	claims map[string]any,
	ttl time.Duration,
) (string, error) {
	now := m.now()
	if ttl < 0 {
		ttl = 0
	}

	builder := jwt.NewBuilder().
		JwtID(uuid.New().String()).
		IssuedAt(now).
		Expiration(now.Add(ttl))

	if m.issuer != "" {
		builder = builder.Issuer(m.issuer)
	}

	for name, value := range claims {
		builder = builder.Claim(name, value)
	}

	token, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), m.secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return string(signed), nil
}

// IssueAccessToken carries the normalized email as sub and the numeric
// user id as "id".
func (m *TokenManager) IssueAccessToken(email string, userID int64) (string, error) {
	return m.Issue(map[string]any{
		jwt.SubjectKey: email,
		ClaimUserID:    userID,
	}, m.ttl)
}

// Validate checks signature, algorithm and expiry. Every failure wraps
// core.ErrTokenInvalid; expiry additionally wraps core.ErrTokenExpired.
func (m *TokenManager) Validate(tokenString string) (jwt.Token, error) {
	opts := []jwt.ParseOption{
		jwt.WithKey(jwa.HS256(), m.secret),
		jwt.WithValidate(true),
		jwt.WithClock(jwt.ClockFunc(m.now)),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	token, err := jwt.Parse([]byte(tokenString), opts...)
	if err != nil {
		if isTokenExpiredError(err) {
			return nil, fmt.Errorf(
				"validate token: %w: %w",
				core.ErrTokenInvalid,
				core.ErrTokenExpired,
			)
		}
		return nil, fmt.Errorf("validate token: %w", core.ErrTokenInvalid)
	}

	return token, nil
}

func (m *TokenManager) VerifyAccessToken(
	_ context.Context,
	tokenString string,
) (*middleware.AccessTokenClaims, error) {
	token, err := m.Validate(tokenString)
	if err != nil {
		return nil, err
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf(
			"verify token: missing subject: %w",
			core.ErrTokenInvalid,
		)
	}

	claims := &middleware.AccessTokenClaims{Subject: subject}

	var id float64
	if err := token.Get(ClaimUserID, &id); err == nil {
		claims.UserID = int64(id)
	}

	if exp, ok := token.Expiration(); ok {
		claims.ExpiresAt = exp
	}

	return claims, nil
}

func isTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "exp") &&
		strings.Contains(errStr, "not satisfied")
}
