// AngelaMos | 2026
// handler.go

package catalog

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

type resource[T Item, C any, U any] struct {
	noun     string
	coll     *Collection[T]
	validate *validator.Validate
	create   func(C, int64) T
	update   func(U, *T, int64)
	present  func(T) T
}

func (res *resource[T, C, U]) list(w http.ResponseWriter, r *http.Request) {
	items, err := res.coll.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	out := make([]T, len(items))
	for i, item := range items {
		out[i] = res.present(item)
	}
	core.OK(w, out)
}

func (res *resource[T, C, U]) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	item, err := res.coll.Get(r.Context(), id)
	if err != nil {
		res.writeError(w, err)
		return
	}
	core.OK(w, res.present(*item))
}

func (res *resource[T, C, U]) createItem(w http.ResponseWriter, r *http.Request) {
	var req C
	if err := core.DecodeJSON(r, &req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}
	if err := res.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	item := res.create(req, middleware.GetUserID(r.Context()))
	if err := res.coll.Create(r.Context(), &item); err != nil {
		core.InternalServerError(w, err)
		return
	}
	core.Created(w, item)
}

func (res *resource[T, C, U]) updateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req U
	if err := core.DecodeJSON(r, &req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}
	if err := res.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	actorID := middleware.GetUserID(r.Context())
	item, err := res.coll.Update(r.Context(), id, func(t *T) {
		res.update(req, t, actorID)
	})
	if err != nil {
		res.writeError(w, err)
		return
	}
	core.OK(w, item)
}

func (res *resource[T, C, U]) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := res.coll.Delete(r.Context(), id); err != nil {
		res.writeError(w, err)
		return
	}
	core.Message(w, res.noun+" deleted successfully")
}

func (res *resource[T, C, U]) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, core.ErrNotFound) {
		core.JSONError(w, core.NewAppError(
			err,
			res.noun+" not found",
			http.StatusNotFound,
			"NOT_FOUND",
		))
		return
	}
	core.InternalServerError(w, err)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		core.BadRequest(w, fmt.Sprintf("invalid id %q", chi.URLParam(r, "id")))
		return 0, false
	}
	return id, true
}

type routes interface {
	list(http.ResponseWriter, *http.Request)
	get(http.ResponseWriter, *http.Request)
	createItem(http.ResponseWriter, *http.Request)
	updateItem(http.ResponseWriter, *http.Request)
	deleteItem(http.ResponseWriter, *http.Request)
}

type Handler struct {
	resources map[Kind]routes
	media     *MediaHandler
}

func NewHandler(c Collections, media *MediaHandler) *Handler {
	v := validator.New(validator.WithRequiredStructEnabled())

	return &Handler{
		resources: map[Kind]routes{
			KindTemples: &resource[Temple, CreateTempleRequest, UpdateTempleRequest]{
				noun:     "Temple",
				coll:     c.Temples,
				validate: v,
				create:   CreateTempleRequest.toEntity,
				update:   UpdateTempleRequest.apply,
				present:  presentTemple,
			},
			KindWeapons: &resource[Weapon, CreateWeaponRequest, UpdateWeaponRequest]{
				noun:     "Weapon",
				coll:     c.Weapons,
				validate: v,
				create:   CreateWeaponRequest.toEntity,
				update:   UpdateWeaponRequest.apply,
				present:  presentWeapon,
			},
			KindFossils: &resource[Fossil, CreateFossilRequest, UpdateFossilRequest]{
				noun:     "Fossil",
				coll:     c.Fossils,
				validate: v,
				create:   CreateFossilRequest.toEntity,
				update:   UpdateFossilRequest.apply,
				present:  presentFossil,
			},
		},
		media: media,
	}
}

// RegisterContentRoutes mounts the read side. Listings need a bearer token;
// media accepts an optional one in the query string.
func (h *Handler) RegisterContentRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	queryToken func(http.Handler) http.Handler,
) {
	r.Route("/content", func(r chi.Router) {
		r.With(queryToken).
			Get("/media/{category}/{media_type}/{filename}", h.media.Serve)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			for kind, res := range h.resources {
				r.Get("/"+string(kind), res.list)
				r.Get("/"+string(kind)+"/{id}", res.get)
			}
		})
	})
}

// RegisterAdminRoutes expects r to already sit behind the admin gate.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	for kind, res := range h.resources {
		r.Post("/"+string(kind), res.createItem)
		r.Put("/"+string(kind)+"/{id}", res.updateItem)
		r.Delete("/"+string(kind)+"/{id}", res.deleteItem)
	}
}
