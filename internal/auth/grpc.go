package auth

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// NewUnaryAuthInterceptor returns a gRPC unary interceptor that extracts and validates
// a Bearer token from incoming metadata and injects the claims into the context.
// Methods listed in allowUnauthenticated bypass authentication (e.g., health checks).
func NewUnaryAuthInterceptor(signer *Signer, allowUnauthenticated ...string) grpc.UnaryServerInterceptor {
	allow := make(map[string]struct{}, len(allowUnauthenticated))
	for _, m := range allowUnauthenticated {
		allow[strings.TrimSpace(m)] = struct{}{}
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := allow[info.FullMethod]; ok {
			return handler(ctx, req)
		}
		c, err := claimsFromMD(ctx, signer)
		if err != nil {
			return nil, err
		}
		return handler(WithClaims(ctx, c), req)
	}
}

func claimsFromMD(ctx context.Context, signer *Signer) (*Claims, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, MsgAuthRequired)
	}
	vals := md.Get("authorization")
	if len(vals) == 0 {
		return nil, status.Error(codes.Unauthenticated, MsgAuthRequired)
	}
	tok := BearerToken(vals[0])
	if tok == "" {
		return nil, status.Error(codes.Unauthenticated, MsgAuthRequired)
	}
	c, err := signer.Verify(tok)
	if err != nil {
		return nil, status.Error(codes.PermissionDenied, MsgInvalidToken)
	}
	return c, nil
}
