package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnshRaj112/aed-backend/internal/handlers"
	"github.com/AnshRaj112/aed-backend/internal/middleware"
	"github.com/AnshRaj112/aed-backend/internal/routes"
	"github.com/AnshRaj112/aed-backend/internal/services"
)

const shutdownTimeout = 15 * time.Second

func runServe(cmd *cobra.Command, args []string) error {
	log := newLogger(cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.Close(log)

	if err := b.migrate(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure indexes")
	}

	uploader, backend, err := services.NewUploader(ctx, cfg)
	if err != nil {
		log.Warn().Err(err).Str("backend", backend).Msg("upload relay unavailable; image uploads will fail")
		uploader = nil
	} else {
		log.Info().Str("backend", backend).Msg("upload relay configured")
	}

	tokens := services.NewTokenIssuer(cfg.JWTSecret)
	accounts := services.NewAccountService(b.users, tokens, log)
	aeds := services.NewAEDService(b.aeds, uploader, services.AEDOptions{
		UpdateClearsSupplies: cfg.UpdateClearsSupplies,
	}, log)
	h := handlers.New(aeds, accounts, cfg.IsProduction(), log)

	opts := routes.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		Production:     cfg.IsProduction(),
		Log:            log,
	}
	if cfg.IsProduction() {
		opts.GlobalLimiters = middleware.NewGlobalLimiters()
		go opts.GlobalLimiters.Run(ctx)
	}
	if b.redis != nil {
		opts.AuthLimiter = middleware.NewRedisLimiter(b.redis, middleware.AuthRateLimitWindow, middleware.AuthRateLimitMaxRequests)
		opts.AuthLimit = middleware.AuthRateLimitMaxRequests
	} else {
		fallback := middleware.NewAuthLimiters()
		go fallback.Run(ctx)
		opts.AuthLimiter = fallback
		opts.AuthLimit = middleware.AuthFallbackBurst
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.NewRouter(h, accounts, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Bool("production", cfg.IsProduction()).Msg("AED backend listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
