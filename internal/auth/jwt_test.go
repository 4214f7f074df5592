// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/heritage-museum/internal/config"
	"github.com/carterperez-dev/heritage-museum/internal/core"
)

const testSecret = "test-secret-that-is-at-least-32-bytes-long"

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestManager(t *testing.T, clock *fakeClock) *TokenManager {
	t.Helper()

	m, err := NewTokenManager(config.JWTConfig{
		Secret:            testSecret,
		AccessTokenExpire: 60 * time.Minute,
	}, WithClock(clock.Now))
	require.NoError(t, err)
	return m
}

func TestNewTokenManager_RequiresSecret(t *testing.T) {
	_, err := NewTokenManager(config.JWTConfig{AccessTokenExpire: time.Hour})
	assert.Error(t, err)
}

func TestIssueAccessToken_RoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	m := newTestManager(t, clock)

	token, err := m.IssueAccessToken("admin@site.com", 42)
	require.NoError(t, err)

	claims, err := m.VerifyAccessToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, "admin@site.com", claims.Subject)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, clock.t.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestValidate_Expiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	m := newTestManager(t, clock)

	token, err := m.IssueAccessToken("a@x.com", 1)
	require.NoError(t, err)

	clock.Advance(59 * time.Minute)
	_, err = m.Validate(token)
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	_, err = m.Validate(token)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestIssue_ZeroTTLIsInvalid(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	m := newTestManager(t, clock)

	for _, ttl := range []time.Duration{0, -time.Minute} {
		token, err := m.Issue(map[string]any{jwt.SubjectKey: "a@x.com"}, ttl)
		require.NoError(t, err)

		_, err = m.Validate(token)
		assert.ErrorIs(t, err, core.ErrTokenInvalid, "ttl=%s", ttl)
	}
}

func TestValidate_Rejects(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	m := newTestManager(t, clock)

	good, err := m.IssueAccessToken("a@x.com", 1)
	require.NoError(t, err)

	other, err := NewTokenManager(config.JWTConfig{
		Secret:            "a-completely-different-secret-value!!",
		AccessTokenExpire: time.Hour,
	})
	require.NoError(t, err)
	foreign, err := other.IssueAccessToken("a@x.com", 1)
	require.NoError(t, err)

	raw, err := jwt.NewBuilder().
		Subject("a@x.com").
		Expiration(time.Now().Add(time.Hour)).
		Build()
	require.NoError(t, err)
	hs512, err := jwt.Sign(raw, jwt.WithKey(jwa.HS512(), []byte(testSecret)))
	require.NoError(t, err)

	parts := strings.Split(good, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"tampered payload", tampered},
		{"wrong secret", foreign},
		{"wrong algorithm", string(hs512)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.VerifyAccessToken(context.Background(), tt.token)
			assert.ErrorIs(t, err, core.ErrTokenInvalid)
		})
	}
}

func TestVerifyAccessToken_MissingSubject(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	m := newTestManager(t, clock)

	token, err := m.Issue(map[string]any{ClaimUserID: 3}, time.Hour)
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(context.Background(), token)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}
