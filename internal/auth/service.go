// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/carterperez-dev/accounts-api/internal/core"
	"github.com/carterperez-dev/accounts-api/internal/middleware"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// UserInfo is the projection of a user the authentication flow needs:
// identity, admin flag, and the stored credential hash.
type UserInfo struct {
	ID           int64
	Name         string
	Email        string
	IsAdmin      bool
	Deleted      bool
	PasswordHash string
}

// UserProvider is implemented by the user service. Lookups by email only
// return live accounts (a soft-deleted user has no email and no
// credential, so it cannot authenticate). Lookups by id return the row
// regardless, with the Deleted flag set.
type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id int64) (*UserInfo, error)
}

type Service struct {
	tokens   *TokenManager
	provider UserProvider
}

func NewService(tokens *TokenManager, provider UserProvider) *Service {
	return &Service{
		tokens:   tokens,
		provider: provider,
	}
}

// Authenticate reports whether the credentials are valid without issuing a
// token. Unknown email and wrong password are indistinguishable to the
// caller. The password comparison only runs when a user is found, so the
// two failure paths are not timing-uniform; that matches the observed
// behavior of the service this replaces.
func (s *Service) Authenticate(
	ctx context.Context,
	email, password string,
) (bool, error) {
	user, err := s.provider.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get user: %w", err)
	}

	return core.VerifyPassword(password, user.PasswordHash), nil
}

// Login verifies credentials and issues a bearer token with claims
// {id, isAdmin}. All failure modes collapse into ErrInvalidCredentials.
func (s *Service) Login(
	ctx context.Context,
	email, password string,
) (string, error) {
	user, err := s.provider.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("get user: %w", err)
	}

	if !core.VerifyPassword(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.IsAdmin)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	return token, nil
}

// GetProfile resolves the authenticated user from decoded claims. A token
// issued before a soft delete still verifies; the lookup fails here
// instead, because the account no longer has an email.
func (s *Service) GetProfile(
	ctx context.Context,
	claims *middleware.TokenClaims,
) (*UserInfo, error) {
	if claims == nil {
		return nil, fmt.Errorf("get profile: %w", core.ErrUnauthorized)
	}

	user, err := s.provider.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	if user.Deleted || user.Email == "" {
		return nil, fmt.Errorf("get profile: %w", core.ErrNotFound)
	}

	return user, nil
}

// Validate decodes and echoes the claims of a raw bearer token.
func (s *Service) Validate(
	ctx context.Context,
	rawToken string,
) (*middleware.TokenClaims, error) {
	if rawToken == "" {
		return nil, fmt.Errorf("validate: %w", core.ErrUnauthorized)
	}

	return s.tokens.Verify(ctx, rawToken)
}
