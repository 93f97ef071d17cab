package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"chosenoffset.com/packdelve/internal/app"
	"chosenoffset.com/packdelve/internal/netplay"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to a YAML config file")
	flag.Parse()

	a, err := app.Setup(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	defer a.Close()
	logger := a.Logger

	srv := netplay.NewServer(a.NewSession, logger)
	statsPath := a.Config.Netplay.StatsPath
	if statsPath != "" {
		if err := srv.RestoreStats(statsPath); err != nil {
			logger.Warn("failed to restore stats, starting from zero", zap.Error(err))
		}
	}
	mux := http.NewServeMux()
	mux.Handle(a.Config.Netplay.Path, srv)

	httpServer := &http.Server{
		Addr:    a.Config.Netplay.Addr,
		Handler: mux,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("addr", httpServer.Addr),
			zap.String("path", a.Config.Netplay.Path))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		logger.Error("server error", zap.Error(err))
	case sig := <-sigChan:
		logger.Info("shutting down", zap.Stringer("signal", sig))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Warn("error during shutdown", zap.Error(err))
	}
	if statsPath != "" {
		if err := srv.SaveStats(statsPath); err != nil {
			logger.Warn("failed to save stats", zap.Error(err))
		}
	}
	logger.Info("server stopped",
		zap.Int("active_sessions", srv.Active()),
		zap.String("totals", srv.Stats.Debug()))
}
