package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wordduel/word-duel-backend/internal/config"
	"github.com/wordduel/word-duel-backend/internal/httpapi"
	"github.com/wordduel/word-duel-backend/internal/hub"
	"github.com/wordduel/word-duel-backend/internal/logging"
	"github.com/wordduel/word-duel-backend/internal/session"
	"github.com/wordduel/word-duel-backend/internal/store"
	"github.com/wordduel/word-duel-backend/internal/words"
	"github.com/wordduel/word-duel-backend/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	provider := words.NewProvider(
		&http.Client{Timeout: cfg.ProviderTimeout},
		cfg.WordAPIBaseURL,
		cfg.MeaningAPIBaseURL,
		cfg.WordLengthMin,
		cfg.WordLengthMax,
		logger,
	)

	st := store.New()
	svc := session.NewService(st, provider, logger)
	h := hub.New(logger)
	d := ws.NewDispatcher(h, svc, logger)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: httpapi.SetupRoutes(h, d, logger),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
