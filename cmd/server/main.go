package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"movieCatalog/internal/auth"
	"movieCatalog/internal/config"
	"movieCatalog/internal/db"
	grpcserver "movieCatalog/internal/grpc"
	"movieCatalog/internal/httpapi"
	"movieCatalog/internal/logger"
	"movieCatalog/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	l := logger.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	l.Info().Str("config", cfg.String()).Msg("configuration loaded")

	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		l.Fatal().Err(err).Str("path", cfg.Database.Path).Msg("open db")
	}
	defer func() {
		if err := d.Close(); err != nil {
			l.Error().Err(err).Msg("close db")
		}
	}()

	rep, err := db.Seed(context.Background(), d, db.SeedOptions{
		AdminUsername: cfg.Seed.AdminUsername,
		AdminEmail:    cfg.Seed.AdminEmail,
		AdminPassword: cfg.Seed.AdminPassword,
	})
	if err != nil {
		l.Fatal().Err(err).Msg("seed db")
	}
	l.Info().Bool("movies", rep.Movies).Bool("directors", rep.Directors).Bool("users", rep.Users).Msg("seed complete")

	signer, err := auth.NewSigner(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	if err != nil {
		l.Fatal().Err(err).Msg("create signer")
	}

	h := &httpapi.Handler{
		Movies:                 repository.NewMovieRepository(d),
		Directors:              repository.NewDirectorRepository(d),
		Users:                  repository.NewUserRepository(d),
		Signer:                 signer,
		DB:                     d,
		AllowAdminRegistration: cfg.Auth.AllowAdminRegistration,
	}
	if cfg.Auth.AllowAdminRegistration {
		l.Warn().Msg("POST /auth/register-admin is enabled; disable ALLOW_ADMIN_REGISTRATION in production")
	}

	if cfg.Redis.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err := auth.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password)
		cancel()
		if err != nil {
			l.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("connect redis")
		}
		defer rdb.Close()
		h.Revoked = auth.NewRedisRevocations(rdb)
		l.Info().Str("addr", cfg.Redis.Addr).Msg("token revocation enabled")
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Address(),
		Handler:           httpapi.NewRouter(h, httpapi.RouterOptions{Logger: l, CORSOrigins: cfg.HTTP.CORSOrigins}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		l.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal().Err(err).Msg("http server")
		}
	}()

	var stopGRPC func(context.Context) error
	if cfg.GRPC.Address != "" {
		addr, shutdown, err := grpcserver.StartGRPC(cfg.GRPC.Address, signer, d, grpcserver.Options{Logger: l})
		if err != nil {
			l.Fatal().Err(err).Msg("start grpc")
		}
		stopGRPC = shutdown
		l.Info().Str("addr", addr).Msg("grpc health server listening")
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigc
	l.Info().Str("signal", sig.String()).Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		l.Error().Err(err).Msg("http shutdown")
	}
	if stopGRPC != nil {
		if err := stopGRPC(ctx); err != nil {
			l.Error().Err(err).Msg("grpc shutdown")
		}
	}
}
