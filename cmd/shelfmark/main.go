// Package main initializes and starts the shelfmark web gateway,
// setting up configuration, logging, the remote-API client, the image
// uploader and the HTTP router.
package main

import (
	"cmp"
	"fmt"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/pkazmirchuk/shelfmark/internal/api"
	"github.com/pkazmirchuk/shelfmark/internal/config"
	"github.com/pkazmirchuk/shelfmark/internal/logger"
	"github.com/pkazmirchuk/shelfmark/internal/server/handler/http"
	"github.com/pkazmirchuk/shelfmark/internal/upload"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// One shared client serves every visitor; the bearer credential
	// travels in the request context, set by the session middleware.
	client := api.New(options.APIBaseURL, nil)
	uploader := upload.New(options.UploadURL, options.UploadPreset)

	handler := &http.Handler{
		Catalog:  client,
		Reviews:  client,
		Shelves:  client,
		Admin:    client,
		Uploader: uploader,
		PageSize: options.PageSize,
		Log:      zapLogger,
	}

	// Build the router with middleware and routes.
	router := http.NewRouter(handler, client, options.CookieName, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting gateway",
		zap.String("addr", options.Addr),
		zap.String("api", options.APIBaseURL),
	)
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start gateway", zap.Error(err))
	}
}
