package auth

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	h, err := HashPassword("s3cret!")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h == "s3cret!" || !strings.HasPrefix(h, "$2") {
		t.Fatalf("unexpected digest: %q", h)
	}
	if !CheckPassword("s3cret!", h) {
		t.Fatalf("expected password to verify")
	}
	if CheckPassword("wrong", h) {
		t.Fatalf("expected wrong password to be rejected")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	a, _ := HashPassword("same")
	b, _ := HashPassword("same")
	if a == b {
		t.Fatalf("expected distinct salts, got identical digests")
	}
}

func TestHashPassword_Empty(t *testing.T) {
	if _, err := HashPassword(""); err != ErrEmptyPassword {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
}
