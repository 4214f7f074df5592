// AngelaMos | 2026
// service.go

package engagement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/carterperez-dev/heritage-museum/internal/core"
	"github.com/carterperez-dev/heritage-museum/internal/metrics"
)

const (
	DefaultLeaderboardLimit      = 20
	DefaultAdminLeaderboardLimit = 10
	DefaultFeedbackLimit         = 50

	maxLeaderboardLimit = 100
	maxFeedbackLimit    = 500

	placeholderVisitMinutes = 5
)

var (
	ErrRoomRequired  = fmt.Errorf("%w: room name is required", core.ErrInvalidInput)
	ErrInvalidRoom   = fmt.Errorf("%w: unknown room", core.ErrInvalidInput)
	ErrRatingOutside = fmt.Errorf("%w: rating must be between 1 and 5", core.ErrInvalidInput)
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) RecordVisit(
	ctx context.Context,
	userID int64,
	room string,
) (*Visit, error) {
	if room == "" {
		return nil, ErrRoomRequired
	}
	if _, ok := ParseRoom(room); !ok {
		return nil, ErrInvalidRoom
	}

	v := &Visit{UserID: userID, RoomVisited: room}
	if err := s.repo.CreateVisit(ctx, v); err != nil {
		return nil, err
	}

	metrics.VisitsRecordedTotal.WithLabelValues(room).Inc()
	return v, nil
}

// VisitStats aggregates over every visitor, or only userID when set.
func (s *Service) VisitStats(
	ctx context.Context,
	userID *int64,
) (*VisitStats, error) {
	counts, err := s.repo.RoomCounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &VisitStats{RoomStatistics: make(map[string]int, len(counts))}
	for _, c := range counts {
		stats.RoomStatistics[c.Room] = c.Visits
		stats.TotalVisits += c.Visits
	}

	if stats.TotalVisits == 0 {
		return stats, nil
	}

	stats.UniqueUsers, err = s.repo.UniqueVisitors(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats.AverageVisitDuration = placeholderVisitMinutes

	return stats, nil
}

// RecordScore appends unconditionally. A player's earlier scores are kept.
func (s *Service) RecordScore(
	ctx context.Context,
	userID int64,
	score int,
	gameMode string,
) (*HighScore, error) {
	hs := &HighScore{UserID: userID, Score: score, GameMode: gameMode}
	if err := s.repo.CreateHighScore(ctx, hs); err != nil {
		return nil, err
	}

	metrics.ScoresRecordedTotal.WithLabelValues(gameMode).Inc()
	slog.DebugContext(ctx, "score recorded",
		"user_id", userID,
		"game_mode", gameMode,
		"score", score,
	)
	return hs, nil
}

func (s *Service) Leaderboard(
	ctx context.Context,
	gameMode string,
	limit int,
) ([]HighScore, error) {
	scores, err := s.repo.TopScores(
		ctx,
		gameMode,
		clampLimit(limit, DefaultLeaderboardLimit, maxLeaderboardLimit),
	)
	if err != nil {
		return nil, err
	}
	return nonNil(scores), nil
}

func (s *Service) UserScores(ctx context.Context, userID int64) ([]HighScore, error) {
	scores, err := s.repo.ScoresByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return nonNil(scores), nil
}

func (s *Service) RecordFeedback(
	ctx context.Context,
	userID int64,
	rating int,
	message string,
) (*Feedback, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrRatingOutside
	}

	f := &Feedback{UserID: userID, Rating: rating, Message: message}
	if err := s.repo.CreateFeedback(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) ListFeedback(ctx context.Context, limit int) ([]Feedback, error) {
	out, err := s.repo.RecentFeedback(
		ctx,
		clampLimit(limit, DefaultFeedbackLimit, maxFeedbackLimit),
	)
	if err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func clampLimit(n, def, upper int) int {
	switch {
	case n <= 0:
		return def
	case n > upper:
		return upper
	default:
		return n
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func isInvalid(err error) bool {
	return errors.Is(err, core.ErrInvalidInput)
}
