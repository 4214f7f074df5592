// AngelaMos | 2026
// handler_test.go

package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/heritage-museum/internal/core"
	"github.com/carterperez-dev/heritage-museum/internal/user"
)

type fakeUsers struct {
	users map[string]*user.User
}

func (f *fakeUsers) Create(_ context.Context, email, password string) (*user.User, error) {
	email = user.NormalizeEmail(email)
	if _, ok := f.users[email]; ok {
		return nil, core.ErrDuplicateKey
	}
	hash, err := core.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &user.User{ID: int64(len(f.users) + 1), Email: email, PasswordHash: hash, IsActive: true}
	f.users[email] = u
	return u, nil
}

func (f *fakeUsers) Authenticate(_ context.Context, email, password string) (*user.User, error) {
	u, ok := f.users[user.NormalizeEmail(email)]
	if !ok || !core.VerifyPassword(password, u.PasswordHash) {
		return nil, core.ErrUnauthorized
	}
	return u, nil
}

func newTestHandler(t *testing.T) (*Handler, *TokenManager) {
	t.Helper()

	clock := &fakeClock{t: time.Now()}
	tokens := newTestManager(t, clock)
	svc := NewService(&fakeUsers{users: map[string]*user.User{}}, tokens)
	return NewHandler(svc), tokens
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestRegisterAndLogin_CaseInsensitive(t *testing.T) {
	h, tokens := newTestHandler(t)

	rec := post(h.Register, `{"email":"Admin@Site.com","password":"pw1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "message")

	rec = post(h.Login, `{"email":"admin@site.com","password":"pw1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "bearer", resp.TokenType)

	claims, err := tokens.VerifyAccessToken(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin@site.com", claims.Subject)
}

func TestLogin_GenericFailure(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := post(h.Register, `{"email":"admin@site.com","password":"pw1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	wrongPassword := post(h.Login, `{"email":"admin@site.com","password":"wrong"}`)
	unknownUser := post(h.Login, `{"email":"ghost@site.com","password":"pw1"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
	assert.Contains(t, wrongPassword.Body.String(), invalidCredentials)
}

func TestLogin_MalformedEmailIsCredentialFailure(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := post(h.Login, `{"email":"not-an-email","password":"pw1"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), invalidCredentials)

	rec = post(h.Login, `{"password":"pw1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_Duplicate(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := post(h.Register, `{"email":"a@x.com","password":"pw1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = post(h.Register, `{"email":" A@X.COM ","password":"pw2"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body core.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "EMAIL_TAKEN", body.Error.Code)
}

func TestRegister_Validation(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"email":`},
		{"missing email", `{"password":"pw1"}`},
		{"bad email", `{"email":"nope","password":"pw1"}`},
		{"missing password", `{"email":"a@x.com"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(h.Register, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
