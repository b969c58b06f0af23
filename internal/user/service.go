// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/carterperez-dev/accounts-api/internal/auth"
	"github.com/carterperez-dev/accounts-api/internal/config"
	"github.com/carterperez-dev/accounts-api/internal/core"
)

type Service struct {
	repo       Repository
	bcryptCost int
}

func NewService(repo Repository, security config.SecurityConfig) *Service {
	return &Service{
		repo:       repo,
		bcryptCost: security.BcryptCost,
	}
}

// CreateAccountParams is the internal creation surface. Unlike
// CreateUserRequest it can set the admin and confirmation flags, so it is
// only reachable from trusted callers (seeding, not the public handler).
type CreateAccountParams struct {
	Name           string
	Email          string
	Password       string
	IsAdmin        bool
	EmailConfirmed bool
}

// Create handles public registration: hashes the password and persists
// credential + user as one unit. The account is always a regular,
// unconfirmed user; the email is normalized to lowercase before the
// uniqueness check applies.
func (s *Service) Create(
	ctx context.Context,
	req CreateUserRequest,
) (*User, error) {
	return s.CreateAccount(ctx, CreateAccountParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
}

func (s *Service) CreateAccount(
	ctx context.Context,
	params CreateAccountParams,
) (*User, error) {
	hash, err := core.HashPassword(params.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	email := strings.ToLower(params.Email)
	user := &User{
		Name:           params.Name,
		Email:          &email,
		IsAdmin:        params.IsAdmin,
		EmailConfirmed: params.EmailConfirmed,
	}

	if err := s.repo.CreateWithCredential(ctx, user, hash); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUser returns soft-deleted rows too, with the sentinel name and null
// email; callers decide whether that is acceptable.
func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

// Update is the admin-facing update: no current-password verification.
// Fails with NotFound when the target is absent or soft-deleted.
func (s *Service) Update(
	ctx context.Context,
	id int64,
	req UpdateUserRequest,
) (*User, error) {
	user, err := s.liveUser(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.applyUpdate(ctx, user, req.Name, req.Email, req.NewPassword)
}

// UpdateOwn requires the caller's current password before applying any
// change, and rejects a password change requested without it.
func (s *Service) UpdateOwn(
	ctx context.Context,
	id int64,
	req UpdateOwnRequest,
) (*User, error) {
	if req.Password == nil || *req.Password == "" {
		return nil, fmt.Errorf(
			"update own: %w",
			core.BadRequestError("password is required"),
		)
	}

	user, err := s.liveUser(ctx, id)
	if err != nil {
		return nil, err
	}

	cred, err := s.repo.GetCredential(ctx, user.CredentialsID)
	if err != nil {
		return nil, err
	}

	if !core.VerifyPassword(*req.Password, cred.Hash) {
		return nil, fmt.Errorf(
			"update own: %w",
			core.BadRequestError("invalid password"),
		)
	}

	return s.applyUpdate(ctx, user, req.Name, req.Email, req.NewPassword)
}

// ChangeOwnPassword is UpdateOwn narrowed to the credential.
func (s *Service) ChangeOwnPassword(
	ctx context.Context,
	id int64,
	currentPassword, newPassword string,
) (*User, error) {
	return s.UpdateOwn(ctx, id, UpdateOwnRequest{
		Password:    &currentPassword,
		NewPassword: &newPassword,
	})
}

func (s *Service) applyUpdate(
	ctx context.Context,
	user *User,
	name, email, newPassword *string,
) (*User, error) {
	if name != nil {
		user.Name = *name
	}
	if email != nil {
		normalized := strings.ToLower(*email)
		user.Email = &normalized
	}

	var newHash *string
	if newPassword != nil {
		hash, err := core.HashPassword(*newPassword, s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		newHash = &hash
	}

	if err := s.repo.Update(ctx, user, newHash); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) SoftDelete(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *Service) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.repo.ExistsByEmail(ctx, strings.ToLower(email))
}

func (s *Service) liveUser(ctx context.Context, id int64) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.Deleted {
		return nil, fmt.Errorf("user %d: %w", id, core.ErrNotFound)
	}

	return user, nil
}

// GetByEmail implements auth.UserProvider: live-account lookup including
// the stored credential hash.
func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	cred, err := s.repo.GetCredential(ctx, user.CredentialsID)
	if err != nil {
		return nil, err
	}

	return toAuthUserInfo(user, cred.Hash), nil
}

// GetByID implements the id half of auth.UserProvider. Soft-deleted rows
// come back with Deleted set and no hash, since their credential row is
// gone.
func (s *Service) GetByID(
	ctx context.Context,
	id int64,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.Deleted {
		return toAuthUserInfo(user, ""), nil
	}

	cred, err := s.repo.GetCredential(ctx, user.CredentialsID)
	if err != nil {
		return nil, err
	}

	return toAuthUserInfo(user, cred.Hash), nil
}

func toAuthUserInfo(u *User, hash string) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.EmailOrEmpty(),
		IsAdmin:      u.IsAdmin,
		Deleted:      u.Deleted,
		PasswordHash: hash,
	}
}

var _ auth.UserProvider = (*Service)(nil)
