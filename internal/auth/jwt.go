// AngelaMos | 2026
// jwt.go

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/carterperez-dev/accounts-api/internal/config"
	"github.com/carterperez-dev/accounts-api/internal/core"
	"github.com/carterperez-dev/accounts-api/internal/middleware"
)

// TokenManager issues and verifies HS256 bearer tokens carrying the
// minimal claim set {id, isAdmin}. The signing key is symmetric and fixed
// at startup; passing it to jwt.Parse pins the algorithm, so a token
// signed with anything other than HS256 fails verification.
type TokenManager struct {
	key    jwk.Key
	config config.JWTConfig
}

func NewTokenManager(cfg config.JWTConfig) (*TokenManager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	key, err := jwk.Import([]byte(cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("import signing key: %w", err)
	}

	if setErr := key.Set(jwk.AlgorithmKey, jwa.HS256()); setErr != nil {
		return nil, fmt.Errorf("set algorithm: %w", setErr)
	}

	return &TokenManager{
		key:    key,
		config: cfg,
	}, nil
}

// Issue signs a token for the given user. Expiration is deliberately far
// out (configured, ~1 year by default); there is no refresh flow.
func (m *TokenManager) Issue(userID int64, isAdmin bool) (string, error) {
	now := time.Now()

	token, err := jwt.NewBuilder().
		Issuer(m.config.Issuer).
		IssuedAt(now).
		Expiration(now.Add(m.config.Expire)).
		Claim("id", userID).
		Claim("isAdmin", isAdmin).
		Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), m.key))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return string(signed), nil
}

// Verify checks signature, expiry, and the presence of both required
// claims. Any failure maps to the Unauthorized taxonomy.
func (m *TokenManager) Verify(
	ctx context.Context,
	tokenString string,
) (*middleware.TokenClaims, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), m.key),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.config.Issuer),
	)
	if err != nil {
		if isTokenExpiredError(err) {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	var idFloat float64
	if err := token.Get("id", &idFloat); err != nil {
		return nil, fmt.Errorf(
			"verify token: missing id claim: %w",
			core.ErrTokenInvalid,
		)
	}

	if idFloat <= 0 {
		return nil, fmt.Errorf(
			"verify token: invalid id claim: %w",
			core.ErrTokenInvalid,
		)
	}

	var isAdmin bool
	if err := token.Get("isAdmin", &isAdmin); err != nil {
		return nil, fmt.Errorf(
			"verify token: missing isAdmin claim: %w",
			core.ErrTokenInvalid,
		)
	}

	return &middleware.TokenClaims{
		UserID:  int64(idFloat),
		IsAdmin: isAdmin,
	}, nil
}

func isTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "exp") &&
		strings.Contains(errStr, "not satisfied")
}

var _ middleware.TokenVerifier = (*TokenManager)(nil)
