// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/heritage-museum/internal/core"
)

type stubVerifier struct {
	claims *AccessTokenClaims
	err    error
}

func (s stubVerifier) VerifyAccessToken(
	_ context.Context,
	token string,
) (*AccessTokenClaims, error) {
	switch token {
	case "good":
	case "stale":
		return nil, fmt.Errorf("%w: %w", core.ErrTokenInvalid, core.ErrTokenExpired)
	default:
		return nil, core.ErrTokenInvalid
	}
	return s.claims, s.err
}

type stubResolver map[string]*Identity

func (s stubResolver) ResolveIdentity(
	_ context.Context,
	email string,
) (*Identity, error) {
	if email == "broken@x.com" {
		return nil, errors.New("connection refused")
	}
	identity, ok := s[email]
	if !ok {
		return nil, core.ErrNotFound
	}
	return identity, nil
}

func okHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := GetIdentity(r.Context())
		require.NotNil(t, identity)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticator(t *testing.T) {
	resolver := stubResolver{
		"a@x.com": {ID: 1, Email: "a@x.com", IsActive: true},
	}

	tests := []struct {
		name       string
		header     string
		subject    string
		wantStatus int
	}{
		{"missing header", "", "a@x.com", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", "a@x.com", http.StatusUnauthorized},
		{"invalid token", "Bearer bad", "a@x.com", http.StatusUnauthorized},
		{"unknown subject", "Bearer good", "gone@x.com", http.StatusNotFound},
		{"store failure", "Bearer good", "broken@x.com", http.StatusInternalServerError},
		{"valid", "Bearer good", "a@x.com", http.StatusOK},
		{"lowercase scheme", "bearer good", "a@x.com", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := stubVerifier{
				claims: &AccessTokenClaims{Subject: tt.subject, UserID: 1},
			}
			h := Authenticator(verifier, resolver)(okHandler(t))

			req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name       string
		identity   *Identity
		wantStatus int
	}{
		{"no identity", nil, http.StatusUnauthorized},
		{"regular user", &Identity{ID: 2}, http.StatusForbidden},
		{"admin", &Identity{ID: 1, IsAdmin: true}, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
			if tt.identity != nil {
				req = req.WithContext(WithIdentity(req.Context(), tt.identity))
			}
			rec := httptest.NewRecorder()

			RequireAdmin(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestQueryToken(t *testing.T) {
	verifier := stubVerifier{claims: &AccessTokenClaims{Subject: "a@x.com"}}
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := QueryToken(verifier)(next)

	tests := []struct {
		name       string
		target     string
		wantStatus int
	}{
		{"absent", "/media/x.png", http.StatusOK},
		{"valid", "/media/x.png?token=good", http.StatusOK},
		{"invalid", "/media/x.png?token=bad", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestExtractToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, ExtractToken(req))

	req.Header.Set("Authorization", "Bearer  abc ")
	assert.Equal(t, "abc", ExtractToken(req))

	req.Header.Set("Authorization", "Bearer")
	assert.Empty(t, ExtractToken(req))
}

func TestTokenFailuresReportExpiry(t *testing.T) {
	verifier := stubVerifier{claims: &AccessTokenClaims{Subject: "a@x.com"}}
	resolver := stubResolver{"a@x.com": {ID: 1, Email: "a@x.com"}}
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name     string
		handler  http.Handler
		header   string
		target   string
		wantCode string
	}{
		{"bearer expired", Authenticator(verifier, resolver)(next), "Bearer stale", "/user/me", "TOKEN_EXPIRED"},
		{"bearer invalid", Authenticator(verifier, resolver)(next), "Bearer bad", "/user/me", "TOKEN_INVALID"},
		{"query expired", QueryToken(verifier)(next), "", "/media/x.png?token=stale", "TOKEN_EXPIRED"},
		{"query invalid", QueryToken(verifier)(next), "", "/media/x.png?token=bad", "TOKEN_INVALID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			tt.handler.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), `"code":"`+tt.wantCode+`"`)
		})
	}
}
