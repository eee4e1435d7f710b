package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/itchan-dev/simpleboard/backend/internal/router"
	"github.com/itchan-dev/simpleboard/backend/internal/setup"
	"github.com/itchan-dev/simpleboard/shared/config"
	"github.com/itchan-dev/simpleboard/shared/logger"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := setup.SetupDependencies(ctx, cfg)
	if err != nil {
		logger.Log.Error("failed to initialize dependencies", "error", err)
		os.Exit(1)
	}
	if err := deps.Start(ctx); err != nil {
		logger.Log.Error("failed to start change feed", "error", err)
		deps.Cleanup(context.Background())
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.Public.HTTPAddr,
		Handler:           router.New(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("server started", "addr", cfg.Public.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// websocket connections are hijacked, so the hub closes them itself
	deps.Cleanup(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("server shutdown", "error", err)
	}
}
