// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"errors"
	"net/http"

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
	r.Post("/authenticate", h.Authenticate)
	r.Post("/token", h.Token)
	r.Post("/login", h.Login)
	r.Post("/validate", h.Validate)

	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Get("/profile", h.Profile)
	})
}

// Authenticate reports credential validity as a boolean, always 200.
func (h *Handler) Authenticate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	valid, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, AuthenticateResponse{Credentials: valid})
}

// Token verifies credentials and returns a signed bearer token.
func (h *Handler) Token(w http.ResponseWriter, r *http.Request) {
	h.issueToken(w, r)
}

// Login is the local-credentials variant of token issuance; same checks,
// same response shape.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	h.issueToken(w, r)
}

func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			core.Unauthorized(w, r, "invalid credentials")
			return
		}
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, TokenResponse{Token: token})
}

// Validate decodes the bearer token from the Authorization header and
// echoes its claims. Registered as a public route; verification happens
// here rather than in middleware.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	raw := middleware.ExtractToken(r)

	claims, err := h.service.Validate(r.Context(), raw)
	if err != nil {
		core.JSONError(w, r, err)
		return
	}

	core.OK(w, ValidateResponse{
		DecodedToken: DecodedToken{
			ID:      claims.UserID,
			IsAdmin: claims.IsAdmin,
		},
	})
}

// Profile resolves the authenticated user. Returns 404 when the account
// was soft-deleted after the token was issued.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	user, err := h.service.GetProfile(r.Context(), claims)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, r, "user")
			return
		}
		core.JSONError(w, r, err)
		return
	}

	core.OK(w, ProfileResponse{
		User: ProfileUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
	})
}

func (h *Handler) decodeCredentials(
	w http.ResponseWriter,
	r *http.Request,
) (AuthenticateRequest, bool) {
	var req AuthenticateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, r, "invalid request body")
		return req, false
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, r, core.FormatValidationError(err))
		return req, false
	}

	return req, true
}
