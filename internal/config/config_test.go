// AngelaMos | 2026
// config_test.go

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/accounts_test")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.JWT.Algorithm != "HS256" {
		t.Errorf("jwt.algorithm = %q, want HS256", cfg.JWT.Algorithm)
	}
	if cfg.JWT.Expire != 8760*time.Hour {
		t.Errorf("jwt.expire = %v, want 8760h", cfg.JWT.Expire)
	}
	if cfg.Security.BcryptCost != 10 {
		t.Errorf("security.bcrypt_cost = %d, want 10", cfg.Security.BcryptCost)
	}
	if cfg.Pagination.DefaultLimit != 10 || cfg.Pagination.MaxLimit != 100 {
		t.Errorf("pagination limits = %d/%d, want 10/100",
			cfg.Pagination.DefaultLimit, cfg.Pagination.MaxLimit)
	}
	if cfg.Pagination.SortBy != "id" || cfg.Pagination.Sort != "asc" {
		t.Errorf("pagination sort = %q %q, want id asc",
			cfg.Pagination.SortBy, cfg.Pagination.Sort)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
}

func TestLoadMissingSecretFails(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/accounts_test")
	t.Setenv("JWT_SECRET", "")

	_, err := load("")
	if err == nil {
		t.Fatal("expected error for missing JWT_SECRET")
	}
	if !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Errorf("error %q does not name JWT_SECRET", err)
	}
}

func TestLoadMissingDatabaseURLFails(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := load("")
	if err == nil {
		t.Fatal("expected error for missing DATABASE_URL")
	}
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("JWT_EXPIRE", "1h")

	cfg, err := load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Security.BcryptCost != 12 {
		t.Errorf("security.bcrypt_cost = %d, want 12", cfg.Security.BcryptCost)
	}
	if cfg.JWT.Expire != time.Hour {
		t.Errorf("jwt.expire = %v, want 1h", cfg.JWT.Expire)
	}
}

func TestLoadRejectsBadPaginationDefaults(t *testing.T) {
	setRequiredEnv(t)

	tests := []struct {
		name string
		yaml string
	}{
		{
			"unsortable column",
			"pagination:\n  sort_by: \"password_hash\"\n",
		},
		{
			"invalid direction",
			"pagination:\n  sort: \"sideways\"\n",
		},
		{
			"default limit above max",
			"pagination:\n  default_limit: 500\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o600); err != nil {
				t.Fatalf("write config: %v", err)
			}

			if _, err := load(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadRejectsUnsupportedAlgorithm(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "jwt:\n  algorithm: \"none\"\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := load(path); err == nil {
		t.Error("expected error for non-HS256 algorithm")
	}
}
