package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"movieCatalog/models"
)

const testSecret = "test-secret-at-least-16-bytes"

func newTestSigner(t *testing.T) *Signer {
	t.Helper()
	s, err := NewSigner(testSecret, "test", time.Hour)
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	return s
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	s := newTestSigner(t)
	tok, issued, err := s.Issue(&models.User{ID: 7, Username: "alice", Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	c, err := s.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if c.UserID != 7 || c.Username != "alice" || c.Role != models.RoleAdmin {
		t.Fatalf("claims mismatch: %+v", c)
	}
	if c.ID == "" || c.ID != issued.ID {
		t.Fatalf("jti mismatch: got %q want %q", c.ID, issued.ID)
	}
	if got := c.ExpiresAt.Sub(c.IssuedAt.Time); got != time.Hour {
		t.Fatalf("expected 1h lifetime, got %v", got)
	}
}

func TestVerify_TamperedSignature(t *testing.T) {
	s := newTestSigner(t)
	tok, _, _ := s.Issue(&models.User{ID: 1, Username: "bob", Role: models.RoleUser})
	parts := strings.Split(tok, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)
	if _, err := s.Verify(tampered); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for tampered signature, got %v", err)
	}
}

func TestVerify_TamperedPayload(t *testing.T) {
	s := newTestSigner(t)
	tok, _, _ := s.Issue(&models.User{ID: 1, Username: "bob", Role: models.RoleUser})
	parts := strings.Split(tok, ".")
	forged, _, _ := s.Issue(&models.User{ID: 1, Username: "bob", Role: models.RoleAdmin})
	// Splice the admin payload onto the user signature.
	parts[1] = strings.Split(forged, ".")[1]
	if _, err := s.Verify(strings.Join(parts, ".")); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for spliced payload, got %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	s := newTestSigner(t)
	past := time.Now().Add(-2 * time.Hour)
	s.now = func() time.Time { return past }
	tok, _, err := s.Issue(&models.User{ID: 1, Username: "bob", Role: models.RoleUser})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	s.now = time.Now
	if _, err := s.Verify(tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerify_WrongSecretAndMalformed(t *testing.T) {
	s := newTestSigner(t)
	other, _ := NewSigner("another-secret-of-16-bytes", "test", time.Hour)
	tok, _, _ := other.Issue(&models.User{ID: 1, Username: "bob", Role: models.RoleUser})
	if _, err := s.Verify(tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for foreign secret, got %v", err)
	}
	if _, err := s.Verify("not-a-token"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}

func TestVerify_RejectsMissingClaims(t *testing.T) {
	s := newTestSigner(t)
	claims := jwt.MapClaims{
		"iss": "test",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := s.Verify(tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for incomplete claims, got %v", err)
	}
}

func TestVerify_RejectsNoneAlgorithm(t *testing.T) {
	s := newTestSigner(t)
	claims := Claims{UserID: 1, Username: "eve", Role: models.RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{
		Issuer: "test", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := s.Verify(tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for alg=none, got %v", err)
	}
}

func TestNewSigner_RequiresSecret(t *testing.T) {
	if _, err := NewSigner("  ", "x", time.Hour); err != ErrEmptySecret {
		t.Fatalf("expected ErrEmptySecret, got %v", err)
	}
}

func TestNewSigner_TTL(t *testing.T) {
	s, err := NewSigner(testSecret, "test", 30*time.Minute)
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	if s.TTL() != 30*time.Minute {
		t.Fatalf("TTL = %v", s.TTL())
	}
	_, c, err := s.Issue(&models.User{ID: 1, Username: "u", Role: models.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if got := c.ExpiresAt.Sub(c.IssuedAt.Time); got != s.TTL() {
		t.Fatalf("token lifetime %v, want %v", got, s.TTL())
	}

	for _, ttl := range []time.Duration{0, -time.Minute} {
		s, err := NewSigner(testSecret, "test", ttl)
		if err != nil {
			t.Fatalf("new signer: %v", err)
		}
		if s.TTL() != time.Hour {
			t.Fatalf("ttl %v: fallback TTL = %v", ttl, s.TTL())
		}
	}
}
