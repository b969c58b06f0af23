// AngelaMos | 2026
// handler.go

package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/accounts-api/internal/core"
	"github.com/carterperez-dev/accounts-api/internal/middleware"
)

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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Post("/users", h.Create)

	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Patch("/users/me", h.UpdateMe)
	})
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/users", h.List)
		r.Get("/users/{userID}", h.Get)
		r.Patch("/users/{userID}", h.Update)
		r.Delete("/users/{userID}", h.Delete)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, r, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, r, core.FormatValidationError(err))
		return
	}

	user, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.Conflict(w, r, "email")
			return
		}
		core.InternalServerError(w, r, err)
		return
	}

	core.Created(w, ToUserResponse(user))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(w, r)
	if !ok {
		return
	}

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, r, "user")
			return
		}
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r)
	if err != nil {
		core.BadRequest(w, r, err.Error())
		return
	}

	users, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	core.Paginated(
		w,
		ToUserResponseList(users),
		params.Limit,
		params.Offset,
		total,
	)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(w, r)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, r, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, r, core.FormatValidationError(err))
		return
	}

	user, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.writeUpdateError(w, r, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}

// UpdateMe is the self-service update; requires the caller's current
// password (see Service.UpdateOwn).
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == 0 {
		core.Unauthorized(w, r, "")
		return
	}

	var req UpdateOwnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, r, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, r, core.FormatValidationError(err))
		return
	}

	user, err := h.service.UpdateOwn(r.Context(), userID, req)
	if err != nil {
		h.writeUpdateError(w, r, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.SoftDelete(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, r, "user")
			return
		}
		core.InternalServerError(w, r, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) writeUpdateError(
	w http.ResponseWriter,
	r *http.Request,
	err error,
) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, r, "user")
	case errors.Is(err, core.ErrDuplicateKey):
		core.Conflict(w, r, "email")
	default:
		core.JSONError(w, r, err)
	}
}

func parseUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "userID")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		core.BadRequest(w, r, "user ID must be a positive integer")
		return 0, false
	}

	return id, true
}

func parseListParams(r *http.Request) (ListUsersParams, error) {
	q := r.URL.Query()

	params := ListUsersParams{
		Limit:          parseIntQuery(q.Get("limit"), 0),
		Offset:         parseIntQuery(q.Get("offset"), 0),
		SortBy:         q.Get("sortBy"),
		Sort:           q.Get("sort"),
		Name:           q.Get("name"),
		Email:          q.Get("email"),
		EmailConfirmed: parseBoolQuery(q.Get("email_confirmed")),
		IsAdmin:        parseBoolQuery(q.Get("is_admin")),
	}

	if raw := q.Get("includeDeleted"); raw != "" {
		params.IncludeDeleted = raw == "true"
	}

	if raw := q.Get("updatedSince"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return params, errors.New("updatedSince must be an RFC3339 timestamp")
		}
		params.UpdatedSince = &ts
	}

	if raw := q.Get("id"); raw != "" {
		ids, err := parseIDList(raw)
		if err != nil {
			return params, err
		}
		params.IDs = ids
	}

	return params, nil
}

func parseIntQuery(raw string, defaultVal int) int {
	if raw == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return parsed
}

func parseBoolQuery(raw string) *bool {
	switch raw {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	default:
		return nil
	}
}

func parseIDList(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))

	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id < 1 {
			return nil, errors.New("id must be a comma-separated list of positive integers")
		}
		ids = append(ids, id)
	}

	return ids, nil
}
