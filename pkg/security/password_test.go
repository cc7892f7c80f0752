package security

import (
	"errors"
	"testing"

	"github.com/rivayastudio/rivaya-backend/pkg/config"
)

func testParams() config.PasswordConfig {
	// Minimal parameters keep the test fast.
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	encoded, err := HashPassword("hunter2", testParams())
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !IsHash(encoded) {
		t.Fatalf("expected argon2id prefix, got %s", encoded)
	}

	ok, err := VerifyPassword("hunter2", encoded)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatal("expected matching password to verify")
	}

	ok, err = VerifyPassword("wrong", encoded)
	if err != nil {
		t.Fatalf("verify mismatch: %v", err)
	}
	if ok {
		t.Fatal("expected mismatched password to fail")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := HashPassword("", testParams()); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	for _, encoded := range []string{"", "plaintext", "$argon2id$v=19$bogus", "$argon2i$v=19$m=8,t=1,p=1$c2FsdA$aGFzaA"} {
		if _, err := VerifyPassword("pw", encoded); !errors.Is(err, ErrInvalidHash) {
			t.Fatalf("encoded %q: expected ErrInvalidHash, got %v", encoded, err)
		}
	}
}

func TestIsHash(t *testing.T) {
	if IsHash("admin123") {
		t.Fatal("plaintext misdetected as hash")
	}
	if !IsHash("$argon2id$v=19$m=8,t=1,p=1$c2FsdA$aGFzaA") {
		t.Fatal("argon2id string not detected")
	}
}
