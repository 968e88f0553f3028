package grpcserver

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"movieCatalog/internal/testutil"
)

type flakyPinger struct{ down atomic.Bool }

func (p *flakyPinger) PingContext(context.Context) error {
	if p.down.Load() {
		return errors.New("database is locked")
	}
	return nil
}

func TestStartGRPC_HealthFollowsDatabase(t *testing.T) {
	p := &flakyPinger{}
	addr, shutdown, err := StartGRPC("127.0.0.1:0", testutil.NewSigner(t), p, Options{
		Logger:        zerolog.Nop(),
		ProbeInterval: 20 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = shutdown(ctx)
	})

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	client := healthpb.NewHealthClient(conn)

	check := func() healthpb.HealthCheckResponse_ServingStatus {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
		if err != nil {
			t.Fatalf("check without token: %v", err)
		}
		return resp.GetStatus()
	}

	if got := check(); got != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("initial status = %v", got)
	}

	p.down.Store(true)
	deadline := time.Now().Add(2 * time.Second)
	for check() != healthpb.HealthCheckResponse_NOT_SERVING {
		if time.Now().After(deadline) {
			t.Fatalf("status never became NOT_SERVING")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
