// @title           Lucky API
// @version         1.0
// @description     Credit-based chance game with player and admin sessions.
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey CookieAuth
// @in                          header
// @name                        Cookie
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Lucky/internal/app"
	"Lucky/internal/config"
	"Lucky/internal/logging"

	_ "Lucky/docs"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logging.NewJSON(os.Stderr, "").Error(ctx, "config", "err", err)
		os.Exit(1)
	}
	logger := logging.NewJSON(os.Stdout, cfg.App.Env).With("version", cfg.App.Version)
	logger.Info(ctx, "config loaded, connecting to stores", "store", cfg.Store.Driver)

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error(ctx, "app init", "err", err)
		os.Exit(1)
	}
	logger.Info(ctx, "app ready, starting HTTP server")
	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.HTTP.Port,
		Handler:      application.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout.Duration(),
		WriteTimeout: cfg.HTTP.WriteTimeout.Duration(),
		IdleTimeout:  cfg.HTTP.IdleTimeout.Duration(),
	}

	go func() {
		logger.Info(ctx, "HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "HTTP server error", "err", err)
			panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		panic(err)
	}

	if err := application.Close(shutdownCtx); err != nil {
		panic(err)
	}
}
