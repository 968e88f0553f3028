package testutil

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"google.golang.org/grpc/metadata"

	"movieCatalog/internal/auth"
	"movieCatalog/internal/db"
	"movieCatalog/models"
)

// Secret is the signing key used by test signers.
const Secret = "test-secret-at-least-16-bytes"

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// The name must be unique per test; the DB is closed via t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	// Shared cache so that every pooled connection sees the same in-memory DB.
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// OpenSeededDB is OpenInMemoryDB followed by the default seed.
func OpenSeededDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	d := OpenInMemoryDB(t, name)
	if _, err := db.Seed(context.Background(), d, db.DefaultSeedOptions()); err != nil {
		t.Fatalf("seed test db: %v", err)
	}
	return d
}

// NewSigner returns a signer over Secret with a one hour TTL.
func NewSigner(t *testing.T) *auth.Signer {
	t.Helper()
	s, err := auth.NewSigner(Secret, "test", time.Hour)
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	return s
}

// IssueToken signs a token for a synthetic user with the given role.
func IssueToken(t *testing.T, s *auth.Signer, id int64, username string, role models.Role) string {
	t.Helper()
	tok, _, err := s.Issue(&models.User{ID: id, Username: username, Role: role})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

// WithBearer sets the Authorization header on r.
func WithBearer(r *http.Request, token string) *http.Request {
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

// CtxWithBearer returns a context containing gRPC metadata Authorization header with the given token.
func CtxWithBearer(ctx context.Context, token string) context.Context {
	md := metadata.Pairs("authorization", "Bearer "+token)
	return metadata.NewIncomingContext(ctx, md)
}
