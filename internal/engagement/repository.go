// AngelaMos | 2026
// repository.go

package engagement

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/heritage-museum/internal/core"
)

type Repository interface {
	CreateVisit(ctx context.Context, v *Visit) error
	RoomCounts(ctx context.Context, userID *int64) ([]RoomCount, error)
	UniqueVisitors(ctx context.Context, userID *int64) (int, error)
	CreateHighScore(ctx context.Context, s *HighScore) error
	TopScores(ctx context.Context, gameMode string, limit int) ([]HighScore, error)
	ScoresByUser(ctx context.Context, userID int64) ([]HighScore, error)
	CreateFeedback(ctx context.Context, f *Feedback) error
	RecentFeedback(ctx context.Context, limit int) ([]Feedback, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const (
	scoreColumns    = `id, user_id, score, game_mode, achieved_at`
	feedbackColumns = `id, user_id, rating, message, submitted_at`
)

func (r *repository) CreateVisit(ctx context.Context, v *Visit) error {
	query := `
		INSERT INTO visits (user_id, room_visited)
		VALUES ($1, $2)
		RETURNING id, visited_at`

	err := r.db.QueryRowxContext(ctx, query, v.UserID, v.RoomVisited).
		Scan(&v.ID, &v.VisitedAt)
	if err != nil {
		return fmt.Errorf("create visit: %w", err)
	}
	return nil
}

func userFilter(userID *int64) (string, []any) {
	if userID == nil {
		return "", nil
	}
	return ` WHERE user_id = $1`, []any{*userID}
}

func (r *repository) RoomCounts(
	ctx context.Context,
	userID *int64,
) ([]RoomCount, error) {
	where, args := userFilter(userID)
	query := `SELECT room_visited, COUNT(*) AS visits FROM visits` +
		where + ` GROUP BY room_visited ORDER BY room_visited`

	var counts []RoomCount
	if err := r.db.SelectContext(ctx, &counts, query, args...); err != nil {
		return nil, fmt.Errorf("room counts: %w", err)
	}
	return counts, nil
}

func (r *repository) UniqueVisitors(
	ctx context.Context,
	userID *int64,
) (int, error) {
	where, args := userFilter(userID)
	query := `SELECT COUNT(DISTINCT user_id) FROM visits` + where

	var n int
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("unique visitors: %w", err)
	}
	return n, nil
}

func (r *repository) CreateHighScore(ctx context.Context, s *HighScore) error {
	query := `
		INSERT INTO high_scores (user_id, score, game_mode)
		VALUES ($1, $2, $3)
		RETURNING id, achieved_at`

	err := r.db.QueryRowxContext(ctx, query, s.UserID, s.Score, s.GameMode).
		Scan(&s.ID, &s.AchievedAt)
	if err != nil {
		return fmt.Errorf("create high score: %w", err)
	}
	return nil
}

// TopScores breaks score ties by insertion order. An empty gameMode spans
// every mode.
func (r *repository) TopScores(
	ctx context.Context,
	gameMode string,
	limit int,
) ([]HighScore, error) {
	var (
		scores []HighScore
		err    error
	)

	if gameMode == "" {
		query := `SELECT ` + scoreColumns + ` FROM high_scores
			ORDER BY score DESC, id LIMIT $1`
		err = r.db.SelectContext(ctx, &scores, query, limit)
	} else {
		query := `SELECT ` + scoreColumns + ` FROM high_scores
			WHERE game_mode = $1
			ORDER BY score DESC, id LIMIT $2`
		err = r.db.SelectContext(ctx, &scores, query, gameMode, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("top scores: %w", err)
	}
	return scores, nil
}

func (r *repository) ScoresByUser(
	ctx context.Context,
	userID int64,
) ([]HighScore, error) {
	query := `SELECT ` + scoreColumns + ` FROM high_scores
		WHERE user_id = $1
		ORDER BY score DESC, id`

	var scores []HighScore
	if err := r.db.SelectContext(ctx, &scores, query, userID); err != nil {
		return nil, fmt.Errorf("scores by user: %w", err)
	}
	return scores, nil
}

func (r *repository) CreateFeedback(ctx context.Context, f *Feedback) error {
	query := `
		INSERT INTO feedback (user_id, rating, message)
		VALUES ($1, $2, $3)
		RETURNING id, submitted_at`

	err := r.db.QueryRowxContext(ctx, query, f.UserID, f.Rating, f.Message).
		Scan(&f.ID, &f.SubmittedAt)
	if err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}
	return nil
}

func (r *repository) RecentFeedback(
	ctx context.Context,
	limit int,
) ([]Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback
		ORDER BY submitted_at DESC, id DESC LIMIT $1`

	var out []Feedback
	if err := r.db.SelectContext(ctx, &out, query, limit); err != nil {
		return nil, fmt.Errorf("recent feedback: %w", err)
	}
	return out, nil
}
