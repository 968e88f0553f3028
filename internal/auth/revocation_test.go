package auth

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRedisRevocations(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	rdb, err := NewRedisClient(ctx, addr, os.Getenv("TEST_REDIS_PASSWORD"))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer rdb.Close()
	s := NewRedisRevocations(rdb)

	id := uuid.NewString()
	if gone, err := s.IsRevoked(ctx, id); err != nil || gone {
		t.Fatalf("fresh id revoked=%v err=%v", gone, err)
	}
	if err := s.Revoke(ctx, id, time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if gone, err := s.IsRevoked(ctx, id); err != nil || !gone {
		t.Fatalf("after revoke revoked=%v err=%v", gone, err)
	}
	ttl, err := rdb.TTL(ctx, revokedPrefix+id).Result()
	if err != nil || ttl <= 0 || ttl > time.Minute {
		t.Fatalf("ttl = %v err=%v", ttl, err)
	}

	// Already expired tokens are not stored.
	past := uuid.NewString()
	if err := s.Revoke(ctx, past, time.Now().Add(-time.Second)); err != nil {
		t.Fatalf("revoke past: %v", err)
	}
	if gone, _ := s.IsRevoked(ctx, past); gone {
		t.Fatalf("expired token stored")
	}
	if err := s.Revoke(ctx, "", time.Now().Add(time.Minute)); err == nil {
		t.Fatalf("expected error for empty id")
	}
}
