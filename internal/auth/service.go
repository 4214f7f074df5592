// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/carterperez-dev/heritage-museum/internal/core"
	"github.com/carterperez-dev/heritage-museum/internal/metrics"
	"github.com/carterperez-dev/heritage-museum/internal/user"
)

type UserProvider interface {
	Create(ctx context.Context, email, password string) (*user.User, error)
	Authenticate(ctx context.Context, email, password string) (*user.User, error)
}

type Service struct {
	users  UserProvider
	tokens *TokenManager
}

func NewService(users UserProvider, tokens *TokenManager) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*user.User, error) {
	u, err := s.users.Create(ctx, req.Email, req.Password)
	if err != nil {
		outcome := "error"
		if errors.Is(err, core.ErrDuplicateKey) {
			outcome = "conflict"
		}
		metrics.AuthAttemptsTotal.WithLabelValues("register", outcome).Inc()
		return nil, err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	slog.InfoContext(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	u, err := s.users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		outcome := "error"
		if errors.Is(err, core.ErrUnauthorized) {
			outcome = "rejected"
		}
		metrics.AuthAttemptsTotal.WithLabelValues("login", outcome).Inc()
		return nil, err
	}

	token, err := s.tokens.IssueAccessToken(u.Email, u.ID)
	if err != nil {
		return nil, err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}
