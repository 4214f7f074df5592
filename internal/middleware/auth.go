// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/carterperez-dev/heritage-museum/internal/core"
)

const IdentityKey contextKey = "identity"

// AccessTokenClaims is what a validated bearer token asserts. Subject is
// the normalized email the token was issued for.
type AccessTokenClaims struct {
	Subject   string
	UserID    int64
	ExpiresAt time.Time
}

type TokenVerifier interface {
	VerifyAccessToken(
		ctx context.Context,
		token string,
	) (*AccessTokenClaims, error)
}

// Identity is the account a request runs as, re-read from the store on
// every request.
type Identity struct {
	ID       int64
	Email    string
	IsActive bool
	IsAdmin  bool
}

type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, email string) (*Identity, error)
}

// Authenticator turns a bearer token into an Identity. Any token failure is
// a 401; a token whose subject no longer exists is a 404.
func Authenticator(
	verifier TokenVerifier,
	resolver IdentityResolver,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)

			if token == "" {
				w.Header().Set("WWW-Authenticate", "Bearer")
				core.JSONError(
					w,
					core.UnauthorizedError("Not authenticated"),
				)
				return
			}

			claims, err := verifier.VerifyAccessToken(r.Context(), token)
			if err != nil {
				w.Header().Set("WWW-Authenticate", "Bearer")
				core.JSONError(w, tokenError(err))
				return
			}

			identity, err := resolver.ResolveIdentity(r.Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, core.ErrNotFound) {
					core.JSONError(w, core.NewAppError(
						core.ErrNotFound,
						"We couldn't find a user with that token. Please log in again.",
						http.StatusNotFound,
						"NOT_FOUND",
					))
					return
				}
				core.InternalServerError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// RequireAdmin must run after Authenticator.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := GetIdentity(r.Context())

		if identity == nil {
			core.JSONError(w, core.UnauthorizedError("authentication required"))
			return
		}

		if !identity.IsAdmin {
			core.JSONError(w, core.ForbiddenError("Admin access required"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// QueryToken validates a `token` query parameter when one is supplied and
// lets requests without it through untouched.
func QueryToken(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.URL.Query().Get("token")
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			if _, err := verifier.VerifyAccessToken(r.Context(), token); err != nil {
				core.JSONError(w, tokenError(err))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func tokenError(err error) *core.AppError {
	if errors.Is(err, core.ErrTokenExpired) {
		return core.TokenExpiredError()
	}
	return core.TokenInvalidError()
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func GetIdentity(ctx context.Context) *Identity {
	if identity, ok := ctx.Value(IdentityKey).(*Identity); ok {
		return identity
	}
	return nil
}

func GetUserID(ctx context.Context) int64 {
	if identity := GetIdentity(ctx); identity != nil {
		return identity.ID
	}
	return 0
}

func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}
