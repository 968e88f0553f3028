package grpcserver

import (
	"context"
	"net"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"movieCatalog/internal/auth"
)

const healthCheckMethod = "/grpc.health.v1.Health/Check"

// ServiceName is the health service name reported alongside the overall ("") status.
const ServiceName = "movieCatalog"

// DefaultProbeInterval is how often the database is pinged to refresh health.
const DefaultProbeInterval = 15 * time.Second

// Pinger reports storage liveness.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Options tunes StartGRPC.
type Options struct {
	Logger        zerolog.Logger
	ProbeInterval time.Duration
}

// StartGRPC serves the standard gRPC health service on addr. Health follows
// the database: SERVING while it answers pings, NOT_SERVING otherwise.
// Unary calls other than Check require a bearer token.
// It returns the bound address and a shutdown function.
func StartGRPC(addr string, signer *auth.Signer, db Pinger, opts Options) (string, func(context.Context) error, error) {
	if signer == nil {
		panic("signer is required")
	}
	if addr == "" {
		addr = ":50051"
	}
	if opts.ProbeInterval <= 0 {
		opts.ProbeInterval = DefaultProbeInterval
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, err
	}

	srv := grpc.NewServer(grpc.UnaryInterceptor(auth.NewUnaryAuthInterceptor(signer, healthCheckMethod)))
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)

	probeCtx, stopProbe := context.WithCancel(context.Background())
	refresh(probeCtx, hs, db, opts.Logger)
	go func() {
		t := time.NewTicker(opts.ProbeInterval)
		defer t.Stop()
		for {
			select {
			case <-probeCtx.Done():
				return
			case <-t.C:
				refresh(probeCtx, hs, db, opts.Logger)
			}
		}
	}()

	go func() {
		if err := srv.Serve(lis); err != nil {
			opts.Logger.Error().Err(err).Msg("grpc serve")
		}
	}()

	return lis.Addr().String(), func(ctx context.Context) error {
		stopProbe()
		hs.Shutdown()
		done := make(chan struct{})
		go func() { srv.GracefulStop(); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			srv.Stop()
			return ctx.Err()
		}
	}, nil
}

func refresh(ctx context.Context, hs *health.Server, db Pinger, l zerolog.Logger) {
	st := healthpb.HealthCheckResponse_SERVING
	if db != nil {
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := db.PingContext(pctx)
		cancel()
		if err != nil {
			l.Warn().Err(err).Msg("database ping failed")
			st = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	hs.SetServingStatus("", st)
	hs.SetServingStatus(ServiceName, st)
}
