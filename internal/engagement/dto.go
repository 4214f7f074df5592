// AngelaMos | 2026
// dto.go

package engagement

type TrackVisitRequest struct {
	Room string `json:"room"`
}

type ScoreRequest struct {
	Score    int    `json:"score"`
	GameMode string `json:"game_mode" validate:"required,max=100"`
}

type FeedbackRequest struct {
	Rating  int    `json:"rating"  validate:"required,min=1,max=5"`
	Message string `json:"message" validate:"required,max=1000"`
}

type LeaderboardResponse struct {
	Leaderboard []HighScore `json:"leaderboard"`
}

type FeedbackListResponse struct {
	Feedback []Feedback `json:"feedback"`
}
