// AngelaMos | 2026
// security_test.go

package core

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !VerifyPassword("correct horse battery staple", hash) {
		t.Error("correct password should verify")
	}

	if VerifyPassword("wrong password", hash) {
		t.Error("wrong password should not verify")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("same input", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	second, err := HashPassword("same input", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if first == second {
		t.Error("two hashes of the same input should differ")
	}

	if !VerifyPassword("same input", first) || !VerifyPassword("same input", second) {
		t.Error("both hashes should verify the original password")
	}
}

func TestHashPasswordEmpty(t *testing.T) {
	_, err := HashPassword("", bcrypt.MinCost)
	if !errors.Is(err, ErrEmptyPassword) {
		t.Errorf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestHashPasswordCostOutOfRange(t *testing.T) {
	// Out-of-range costs silently fall back to the default rather than
	// failing, so a bad config value cannot disable account creation.
	hash, err := HashPassword("password", 99)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("bcrypt.Cost: %v", err)
	}

	if cost != DefaultBcryptCost {
		t.Errorf("expected default cost %d, got %d", DefaultBcryptCost, cost)
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	if VerifyPassword("password", "not-a-bcrypt-hash") {
		t.Error("malformed hash should not verify")
	}

	if VerifyPassword("password", "") {
		t.Error("empty hash should not verify")
	}
}
