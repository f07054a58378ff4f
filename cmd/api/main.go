package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/storyboard-studio/storyboard-relay/config"
	"github.com/storyboard-studio/storyboard-relay/internal/bootstrap"
	"github.com/storyboard-studio/storyboard-relay/internal/relay/project"
	"github.com/storyboard-studio/storyboard-relay/internal/relay/stats"
	"go.uber.org/zap"
)

const serviceName = "storyboard-relay"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := bootstrap.NewLogger(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if !cfg.DotEnvLoaded {
		logger.Info("no .env file found, using environment variables")
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	store, err := project.NewStore(cfg.Images.Dir)
	if err != nil {
		logger.Fatal("images root", zap.Error(err))
	}
	if err := store.EnsureRoot(); err != nil {
		logger.Fatal("images root", zap.Error(err))
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		WebhookURL:     cfg.Webhook.URL,
		WebhookTimeout: cfg.Webhook.Timeout,
		ImageTimeout:   cfg.Images.Timeout,
		ImageUserAgent: cfg.Images.UserAgent,
		StaticDir:      cfg.Server.StaticDir,
		Projects:       store,
		Logger:         logger,
	})

	var scheduler *stats.Scheduler
	if cfg.Stats.Schedule != "" {
		scheduler = stats.NewScheduler(store.Root(), cfg.Stats.Schedule, logger)
		if err := scheduler.Start(); err != nil {
			logger.Fatal("image stats", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("server running",
			zap.String("addr", srv.Addr),
			zap.String("webhook", cfg.Webhook.URL),
			zap.String("images_dir", store.Root()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server gracefully")

	if scheduler != nil {
		<-scheduler.Stop().Done()
	}

	// In-flight relays may still be waiting on the webhook.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Webhook.Timeout+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
