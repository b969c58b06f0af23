// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/carterperez-dev/accounts-api/internal/config"
	"github.com/carterperez-dev/accounts-api/internal/core"
	"github.com/carterperez-dev/accounts-api/internal/middleware"
)

type fakeProvider struct {
	byEmail map[string]*UserInfo
	byID    map[int64]*UserInfo
}

func (f *fakeProvider) GetByEmail(
	ctx context.Context,
	email string,
) (*UserInfo, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
}

func (f *fakeProvider) GetByID(
	ctx context.Context,
	id int64,
) (*UserInfo, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
}

func newTestService(t *testing.T) (*Service, *fakeProvider) {
	t.Helper()

	hash, err := core.HashPassword("secret-password", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	alice := &UserInfo{
		ID:           1,
		Name:         "Alice",
		Email:        "alice@example.com",
		IsAdmin:      true,
		PasswordHash: hash,
	}

	provider := &fakeProvider{
		byEmail: map[string]*UserInfo{"alice@example.com": alice},
		byID:    map[int64]*UserInfo{1: alice},
	}

	tokens, err := NewTokenManager(config.JWTConfig{
		Secret: "service-test-secret",
		Expire: time.Hour,
		Issuer: "accounts-api",
	})
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	return NewService(tokens, provider), provider
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		want     bool
	}{
		{"valid credentials", "alice@example.com", "secret-password", true},
		{"wrong password", "alice@example.com", "wrong", false},
		{"unknown email", "nobody@example.com", "secret-password", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Authenticate(ctx, tt.email, tt.password)
			if err != nil {
				t.Fatalf("Authenticate: %v", err)
			}
			if got != tt.want {
				t.Errorf("Authenticate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "alice@example.com", "secret-password")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims, err := svc.Validate(ctx, token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if claims.UserID != 1 {
		t.Errorf("UserID = %d, want 1", claims.UserID)
	}
	if !claims.IsAdmin {
		t.Error("IsAdmin = false, want true")
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, wrongPass := svc.Login(ctx, "alice@example.com", "wrong")
	_, unknownEmail := svc.Login(ctx, "nobody@example.com", "secret-password")

	if !errors.Is(wrongPass, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}

	// The caller cannot distinguish which part of the credentials failed.
	if wrongPass.Error() != unknownEmail.Error() {
		t.Errorf("failure messages differ: %q vs %q", wrongPass, unknownEmail)
	}
}

func TestGetProfile(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.GetProfile(ctx, &middleware.TokenClaims{UserID: 1})
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}

	if user.Name != "Alice" || user.Email != "alice@example.com" {
		t.Errorf("unexpected profile: %+v", user)
	}
}

func TestGetProfileNilClaims(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetProfile(context.Background(), nil)
	if !errors.Is(err, core.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

// A token issued before the account was soft-deleted still verifies; the
// profile lookup is where it must fail.
func TestGetProfileAfterSoftDelete(t *testing.T) {
	svc, provider := newTestService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "alice@example.com", "secret-password")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	provider.byID[1] = &UserInfo{
		ID:      1,
		Name:    "(deleted)",
		Deleted: true,
	}
	delete(provider.byEmail, "alice@example.com")

	claims, err := svc.Validate(ctx, token)
	if err != nil {
		t.Fatalf("token should still verify after delete: %v", err)
	}

	if _, err := svc.GetProfile(ctx, claims); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestValidateEmptyToken(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Validate(context.Background(), "")
	if !errors.Is(err, core.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}
