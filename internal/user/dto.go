// AngelaMos | 2026
// dto.go

package user

import (
	"time"

	"github.com/carterperez-dev/accounts-api/internal/config"
)

// CreateUserRequest is the public registration payload. Admin status is
// never client-settable; accounts created through it are regular users.
type CreateUserRequest struct {
	Name     string `json:"name"     validate:"required,min=3,max=30"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// UpdateUserRequest is the admin-facing update: no current-password check.
type UpdateUserRequest struct {
	Name        *string `json:"name,omitempty"        validate:"omitempty,min=3,max=30"`
	Email       *string `json:"email,omitempty"       validate:"omitempty,email,max=255"`
	NewPassword *string `json:"newPassword,omitempty" validate:"omitempty,min=6,max=72"`
}

// UpdateOwnRequest is the self-service variant. Password is the current
// password and must be present and correct before any change is applied
// when NewPassword is requested.
type UpdateOwnRequest struct {
	Name        *string `json:"name,omitempty"        validate:"omitempty,min=3,max=30"`
	Email       *string `json:"email,omitempty"       validate:"omitempty,email,max=255"`
	Password    *string `json:"password,omitempty"    validate:"omitempty,max=72"`
	NewPassword *string `json:"newPassword,omitempty" validate:"omitempty,min=6,max=72"`
}

type UserResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          *string   `json:"email"`
	EmailConfirmed bool      `json:"email_confirmed"`
	IsAdmin        bool      `json:"is_admin"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ListUsersParams carries the list filters. Pointer fields distinguish
// "not filtered" from a false/zero filter value.
type ListUsersParams struct {
	IDs            []int64
	Name           string
	Email          string
	EmailConfirmed *bool
	IsAdmin        *bool
	UpdatedSince   *time.Time
	IncludeDeleted bool
	Limit          int
	Offset         int
	SortBy         string
	Sort           string
}

// sortColumns whitelists sortable fields; anything else falls back to the
// configured default.
var sortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"email":      "email",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

func (p *ListUsersParams) Normalize(defaults config.PaginationConfig) {
	if p.Limit < 1 {
		p.Limit = defaults.DefaultLimit
	}
	if p.Limit > defaults.MaxLimit {
		p.Limit = defaults.MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}

	// The configured defaults are validated at load, but the fallback is
	// interpolated into ORDER BY, so re-check before trusting them.
	if _, ok := sortColumns[p.SortBy]; !ok {
		p.SortBy = defaults.SortBy
		if _, ok := sortColumns[p.SortBy]; !ok {
			p.SortBy = "id"
		}
	}

	if p.Sort != "asc" && p.Sort != "desc" {
		p.Sort = defaults.Sort
		if p.Sort != "asc" && p.Sort != "desc" {
			p.Sort = "asc"
		}
	}
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		EmailConfirmed: u.EmailConfirmed,
		IsAdmin:        u.IsAdmin,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}
