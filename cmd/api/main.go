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

	"go.uber.org/zap"

	"github.com/novatorem/novatorem/internal/adapters/lastfm"
	"github.com/novatorem/novatorem/internal/adapters/rest"
	"github.com/novatorem/novatorem/internal/adapters/spotify"
	"github.com/novatorem/novatorem/internal/adapters/sqlite"
	"github.com/novatorem/novatorem/internal/artwork"
	"github.com/novatorem/novatorem/internal/cache"
	"github.com/novatorem/novatorem/internal/config"
	"github.com/novatorem/novatorem/internal/core/ports"
	"github.com/novatorem/novatorem/internal/core/services"
	"github.com/novatorem/novatorem/internal/logging"
	"github.com/novatorem/novatorem/internal/render"
)

func main() {
	// 1. Configuration (.env + environment variables)
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("FATAL: failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// 2. Initialize "driven" adapters.
	// -- Providers. Both may be configured; Spotify wins the tie.
	httpClient := &http.Client{Timeout: 10 * time.Second}

	var spotifyProvider ports.SnapshotProvider
	var featureSource ports.FeatureSource
	if cfg.Spotify.IsConfigured() {
		client := spotify.NewClient(cfg.Spotify, httpClient, logger)
		spotifyProvider = client
		featureSource = client
	}

	var lastfmProvider ports.SnapshotProvider
	if cfg.LastFM.IsConfigured() {
		lastfmProvider = lastfm.NewClient(cfg.LastFM, httpClient, logger)
	}

	provider, err := services.SelectProvider(spotifyProvider, lastfmProvider)
	if err != nil {
		logger.Fatal("no provider credentials set", zap.Error(err))
	}
	logger.Info("provider selected", zap.String("provider", string(provider.Name())))

	// -- Snapshot store. Optional: a broken database disables the
	// recently-played fallback but does not stop the server.
	var store ports.SnapshotStore
	dbAdapter, err := sqlite.NewAdapter(cfg.DBPath)
	if err != nil {
		logger.Warn("snapshot store unavailable", zap.String("path", cfg.DBPath), zap.Error(err))
	} else {
		store = dbAdapter
		defer dbAdapter.Close()
	}

	// 3. Core logic.
	resolver := services.NewResolver(provider, featureSource, store, logger)

	// 4. "Driving" adapter: the HTTP handler.
	pipeline := render.NewPipeline(cfg.ThemeDir, artwork.NewFetcher(httpClient, logger), logger)
	handler := rest.NewHandler(resolver, pipeline, cache.New(cfg.CacheTTL), cfg.CacheTTL, logger)

	// 5. Start the server.
	logger.Info("novatorem is running", zap.String("addr", cfg.Addr))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", zap.Error(err))
		}
	}
}
