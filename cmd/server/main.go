package main

import (
	"context"
	"errors"
	"log"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"boildown/internal/config"
	"boildown/internal/db"
	"boildown/internal/handler"
	"boildown/internal/history"
	transport "boildown/internal/http"
	"boildown/internal/logger"
	"boildown/internal/metrics"
	"boildown/internal/repository"
	"boildown/internal/scheduler"
	"boildown/internal/service"
	"boildown/internal/snowflake"
)

// @title Boil it down API
// @version 1.0
// @description Summarizes text to one word or one sentence and keeps a per-client history.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token matching BOILDOWN_SETTINGS_TOKEN
func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger.Init(logger.ParseLevel(cfg.LogLevel))

	if err := snowflake.Init(cfg.NodeID); err != nil {
		log.Fatalf("init snowflake: %v", err)
	}

	dbConn, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer dbConn.Close()

	settingsRepo := repository.NewSettingsRepository(dbConn)
	localStorageRepo := repository.NewLocalStorageRepository(dbConn)

	m := metrics.New()
	settingsService := service.NewSettingsService(settingsRepo, cfg.AI)
	summarizeService := service.NewSummarizeService(settingsService, nil, m)

	sessions := history.NewRegistry(history.LocalStorageFactory(localStorageRepo), summarizeService, history.Options{
		MaxCollapsedLines: cfg.History.MaxCollapsedLines,
		MaxCollapsedChars: cfg.History.MaxCollapsedChars,
		Metrics:           m,
	})

	router := transport.NewRouter(
		handler.NewPageHandler(sessions),
		handler.NewHistoryHandler(sessions),
		handler.NewSettingsHandler(settingsService),
		m.Handler(),
		cfg.StaticDir,
		cfg.SettingsToken,
	)

	sched := scheduler.New(sessions, cfg.History.SessionSweep, cfg.History.SessionIdle)
	sched.Start()
	defer sched.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server started", "module", "server", "action", "start", "resource", "http", "result", "ok", "addr", cfg.Addr, "db", cfg.DBPath, "provider", cfg.AI.Provider)
		if err := router.Start(cfg.Addr); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down", "module", "server", "action", "stop", "resource", "http", "result", "ok")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return router.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", "module", "server", "action", "stop", "resource", "http", "result", "failed", "error", err)
	}
}
