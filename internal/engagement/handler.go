// AngelaMos | 2026
// handler.go

package engagement

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/heritage-museum/internal/core"
	"github.com/carterperez-dev/heritage-museum/internal/middleware"
)

type Handler struct {
	service  *Service
	validate *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterUserRoutes mounts on the authenticated /user group.
func (h *Handler) RegisterUserRoutes(r chi.Router) {
	r.Post("/feedback", h.SubmitFeedback)
	r.Post("/track-visit", h.TrackVisit)
	r.Get("/high-scores", h.MyScores)
}

// RegisterGameRoutes mounts on the authenticated /gamification group.
func (h *Handler) RegisterGameRoutes(r chi.Router) {
	r.Post("/score", h.SubmitScore)
	r.Get("/leaderboard", h.Leaderboard)
	r.Get("/my-scores", h.MyScores)
}

// RegisterAdminRoutes expects r to already sit behind the admin gate.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/visits/stats", h.VisitStats)
	r.Get("/leaderboard", h.AdminLeaderboard)
	r.Get("/feedback", h.AdminFeedback)
}

func (h *Handler) TrackVisit(w http.ResponseWriter, r *http.Request) {
	var req TrackVisitRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	_, err := h.service.RecordVisit(
		r.Context(),
		middleware.GetUserID(r.Context()),
		req.Room,
	)
	switch {
	case errors.Is(err, ErrRoomRequired):
		core.BadRequest(w, "Room name is required")
		return
	case errors.Is(err, ErrInvalidRoom):
		core.BadRequest(w, "Invalid room. Valid rooms are: "+roomNames())
		return
	case err != nil:
		core.InternalServerError(w, err)
		return
	}

	core.Message(w, fmt.Sprintf("Visit to %s recorded", req.Room))
}

func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	f, err := h.service.RecordFeedback(
		r.Context(),
		middleware.GetUserID(r.Context()),
		req.Rating,
		req.Message,
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, f)
}

func (h *Handler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	hs, err := h.service.RecordScore(
		r.Context(),
		middleware.GetUserID(r.Context()),
		req.Score,
		req.GameMode,
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, hs)
}

func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	scores, ok := h.leaderboard(w, r, DefaultLeaderboardLimit)
	if !ok {
		return
	}
	core.OK(w, scores)
}

func (h *Handler) AdminLeaderboard(w http.ResponseWriter, r *http.Request) {
	scores, ok := h.leaderboard(w, r, DefaultAdminLeaderboardLimit)
	if !ok {
		return
	}
	core.OK(w, LeaderboardResponse{Leaderboard: scores})
}

func (h *Handler) leaderboard(
	w http.ResponseWriter,
	r *http.Request,
	defaultLimit int,
) ([]HighScore, bool) {
	limit, ok := queryInt(w, r, "limit", defaultLimit)
	if !ok {
		return nil, false
	}

	scores, err := h.service.Leaderboard(
		r.Context(),
		r.URL.Query().Get("game_mode"),
		limit,
	)
	if err != nil {
		h.writeError(w, err)
		return nil, false
	}
	return scores, true
}

func (h *Handler) MyScores(w http.ResponseWriter, r *http.Request) {
	scores, err := h.service.UserScores(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}
	core.OK(w, scores)
}

func (h *Handler) VisitStats(w http.ResponseWriter, r *http.Request) {
	var userID *int64
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			core.BadRequest(w, fmt.Sprintf("invalid user_id %q", raw))
			return
		}
		userID = &id
	}

	stats, err := h.service.VisitStats(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	core.OK(w, stats)
}

func (h *Handler) AdminFeedback(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit", DefaultFeedbackLimit)
	if !ok {
		return
	}

	feedback, err := h.service.ListFeedback(r.Context(), limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	core.OK(w, FeedbackListResponse{Feedback: feedback})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if isInvalid(err) {
		core.BadRequest(w, err.Error())
		return
	}
	core.InternalServerError(w, err)
}

func queryInt(
	w http.ResponseWriter,
	r *http.Request,
	name string,
	fallback int,
) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		core.BadRequest(w, fmt.Sprintf("invalid %s %q", name, raw))
		return 0, false
	}
	return n, true
}
