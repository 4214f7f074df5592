// AngelaMos | 2026
// handler.go

package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/heritage-museum/internal/core"
)

const invalidCredentials = "Invalid email or password. Please try again."

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}
	req.Normalize()

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if _, err := h.service.Register(r.Context(), req); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.JSONError(w, core.NewAppError(
				err,
				fmt.Sprintf(
					"Looks like '%s' is already registered. Try logging in or use a different email.",
					req.Email,
				),
				http.StatusBadRequest,
				"EMAIL_TAKEN",
			))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Message(w, "Welcome! Your account has been created successfully.")
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}
	req.Normalize()

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrUnauthorized) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			core.Unauthorized(w, invalidCredentials)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}
