// AngelaMos | 2026
// service_test.go

package engagement

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/heritage-museum/internal/core"
)

type memRepo struct {
	mu       sync.Mutex
	visits   []Visit
	scores   []HighScore
	feedback []Feedback
}

func (m *memRepo) CreateVisit(_ context.Context, v *Visit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v.ID = int64(len(m.visits) + 1)
	v.VisitedAt = time.Now()
	m.visits = append(m.visits, *v)
	return nil
}

func (m *memRepo) filteredVisits(userID *int64) []Visit {
	var out []Visit
	for _, v := range m.visits {
		if userID == nil || v.UserID == *userID {
			out = append(out, v)
		}
	}
	return out
}

func (m *memRepo) RoomCounts(_ context.Context, userID *int64) ([]RoomCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byRoom := map[string]int{}
	for _, v := range m.filteredVisits(userID) {
		byRoom[v.RoomVisited]++
	}
	var out []RoomCount
	for room, n := range byRoom {
		out = append(out, RoomCount{Room: room, Visits: n})
	}
	return out, nil
}

func (m *memRepo) UniqueVisitors(_ context.Context, userID *int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[int64]bool{}
	for _, v := range m.filteredVisits(userID) {
		seen[v.UserID] = true
	}
	return len(seen), nil
}

func (m *memRepo) CreateHighScore(_ context.Context, s *HighScore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = int64(len(m.scores) + 1)
	s.AchievedAt = time.Now()
	m.scores = append(m.scores, *s)
	return nil
}

func (m *memRepo) TopScores(_ context.Context, gameMode string, limit int) ([]HighScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []HighScore
	for _, s := range m.scores {
		if gameMode == "" || s.GameMode == gameMode {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memRepo) ScoresByUser(_ context.Context, userID int64) ([]HighScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []HighScore
	for _, s := range m.scores {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

func (m *memRepo) CreateFeedback(_ context.Context, f *Feedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f.ID = int64(len(m.feedback) + 1)
	f.SubmittedAt = time.Now()
	m.feedback = append(m.feedback, *f)
	return nil
}

func (m *memRepo) RecentFeedback(_ context.Context, limit int) ([]Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Feedback
	for i := len(m.feedback) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.feedback[i])
	}
	return out, nil
}

func TestService_RecordVisit(t *testing.T) {
	svc := NewService(&memRepo{})
	ctx := context.Background()

	tests := []struct {
		name    string
		room    string
		wantErr error
	}{
		{"temples", "temples", nil},
		{"game", "game", nil},
		{"empty", "", ErrRoomRequired},
		{"unknown", "armory", ErrInvalidRoom},
		{"case sensitive", "Temples", ErrInvalidRoom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := svc.RecordVisit(ctx, 1, tt.room)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, core.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, v.ID)
			assert.Equal(t, tt.room, v.RoomVisited)
		})
	}
}

func TestService_VisitStats(t *testing.T) {
	svc := NewService(&memRepo{})
	ctx := context.Background()

	empty, err := svc.VisitStats(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.TotalVisits)
	assert.Equal(t, 0, empty.UniqueUsers)
	assert.Equal(t, 0, empty.AverageVisitDuration)
	assert.NotNil(t, empty.RoomStatistics)

	for _, v := range []struct {
		user int64
		room string
	}{
		{1, "temples"}, {1, "temples"}, {2, "fossils"}, {3, "game"},
	} {
		_, err := svc.RecordVisit(ctx, v.user, v.room)
		require.NoError(t, err)
	}

	all, err := svc.VisitStats(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"temples": 2, "fossils": 1, "game": 1}, all.RoomStatistics)
	assert.Equal(t, 4, all.TotalVisits)
	assert.Equal(t, 3, all.UniqueUsers)
	assert.Equal(t, 5, all.AverageVisitDuration)

	one := int64(1)
	mine, err := svc.VisitStats(ctx, &one)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"temples": 2}, mine.RoomStatistics)
	assert.Equal(t, 1, mine.UniqueUsers)
}

func TestService_LeaderboardOrderedAndLimited(t *testing.T) {
	svc := NewService(&memRepo{})
	ctx := context.Background()

	for i, score := range []int{40, 90, 10, 90, 70, 55} {
		_, err := svc.RecordScore(ctx, int64(i+1), score, "temples-quiz")
		require.NoError(t, err)
	}
	_, err := svc.RecordScore(ctx, 9, 1000, "fossils-quiz")
	require.NoError(t, err)

	board, err := svc.Leaderboard(ctx, "temples-quiz", 3)
	require.NoError(t, err)
	require.Len(t, board, 3)

	for i, s := range board {
		assert.Equal(t, "temples-quiz", s.GameMode)
		if i > 0 {
			assert.LessOrEqual(t, s.Score, board[i-1].Score)
		}
	}
	assert.Equal(t, []int{90, 90, 70}, []int{board[0].Score, board[1].Score, board[2].Score})

	everything, err := svc.Leaderboard(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, everything, 7)
	assert.Equal(t, 1000, everything[0].Score)
}

func TestService_RecordScoreKeepsEveryAttempt(t *testing.T) {
	svc := NewService(&memRepo{})
	ctx := context.Background()

	for _, score := range []int{5, -3, 5} {
		_, err := svc.RecordScore(ctx, 1, score, "weapons-quiz")
		require.NoError(t, err)
	}

	mine, err := svc.UserScores(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, -3, mine[2].Score)

	none, err := svc.UserScores(ctx, 2)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestService_RecordFeedbackRating(t *testing.T) {
	svc := NewService(&memRepo{})
	ctx := context.Background()

	for _, rating := range []int{1, 5} {
		_, err := svc.RecordFeedback(ctx, 1, rating, "ok")
		assert.NoError(t, err)
	}
	for _, rating := range []int{0, 6, -1} {
		_, err := svc.RecordFeedback(ctx, 1, rating, "ok")
		assert.ErrorIs(t, err, ErrRatingOutside)
	}

	recent, err := svc.ListFeedback(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 5, recent[0].Rating)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 20, clampLimit(0, 20, 100))
	assert.Equal(t, 20, clampLimit(-4, 20, 100))
	assert.Equal(t, 7, clampLimit(7, 20, 100))
	assert.Equal(t, 100, clampLimit(5000, 20, 100))
}
