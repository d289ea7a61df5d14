// ABOUTME: Main entry point for the Digests Reader API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"digests-reader-api/api"
	"digests-reader-api/api/handlers"
	"digests-reader-api/api/middleware"
	logruslogger "digests-reader-api/infrastructure/logger/logrus"
	"digests-reader-api/pkg/bootstrap"
	"digests-reader-api/pkg/config"
	"digests-reader-api/pkg/featureflags"

	"go.uber.org/automaxprocs/maxprocs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logruslogger.New(logruslogger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	defer logger.Close()

	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		logger.Debug(fmt.Sprintf(format, args...), nil)
	})); err != nil {
		logger.Warn("Failed to set GOMAXPROCS", map[string]interface{}{"error": err.Error()})
	}

	flags := featureflags.NewEnvManager("FEATURE_")

	logger.Info("Starting Digests Reader API", map[string]interface{}{
		"port":        cfg.Server.Port,
		"cache_type":  cfg.Cache.Type,
		"page_source": cfg.Fetch.PageSource,
		"flags":       flags.GetAllFlags(),
	})

	app, err := bootstrap.Build(cfg, flags, logger, bootstrap.Options{
		Transport: &middleware.LoggingRoundTripper{Transport: http.DefaultTransport, Logger: logger},
	})
	if err != nil {
		logger.Error("Failed to wire services", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	defer app.Close()

	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
		Logger:    logger,
		Flags:     flags,
		RateLimit: cfg.Server.RateLimit,
		RateBurst: cfg.Server.RateBurst,
	})

	handlers.NewMarkdownHandler(app.Articles, app.Discussions).RegisterRoutes(humaAPI)
	handlers.RegisterHealth(humaAPI)

	// Batches of slow pages can take a while; the write timeout allows for it
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2*cfg.Fetch.Timeout() + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Server stopped", nil)
}
