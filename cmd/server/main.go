package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Abm32/Neuroshift/internal"
	"github.com/Abm32/Neuroshift/internal/ai"
	"github.com/Abm32/Neuroshift/internal/api"
	"github.com/Abm32/Neuroshift/internal/auth"
	"github.com/Abm32/Neuroshift/internal/config"
	"github.com/Abm32/Neuroshift/internal/session"
	"github.com/Abm32/Neuroshift/internal/storage"
)

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	if cfg.DBType == "file" {
		if err := os.MkdirAll(filepath.Dir(cfg.FileAccounts), 0755); err != nil {
			logger.Fatalf("failed to create data dir: %v", err)
		}
	}

	var repos *storage.Repositories
	switch cfg.DBType {
	case "postgres":
		repos, err = storage.NewPostgresRepositories(cfg.DBDSN, logger)
	default:
		repos, err = storage.NewFileRepositories(cfg, logger)
	}
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}

	var completer ai.Completer
	if cfg.AIAPIKey != "" {
		client, err := ai.NewClient(cfg, logger)
		if err != nil {
			logger.Fatalf("failed to init AI client: %v", err)
		}
		completer = client
	} else {
		logger.Warn("AI_API_KEY not set; onboarding will not generate starter tasks")
	}
	generator := ai.NewGenerator(completer, logger)

	authSvc := auth.NewService(repos.Accounts, cfg.JWTSecret, cfg.SessionTTL, logger)
	sessions := session.NewManager(authSvc, repos, logger)

	app := api.NewApp(logger, authSvc, sessions, repos, generator)
	router := api.NewRouter(app)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	go func() {
		logger.Infof("server listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}

	sessions.Close()
	if err := repos.Close(); err != nil {
		logger.Errorf("storage close: %v", err)
	}
}
