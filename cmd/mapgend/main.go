package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TylerStocks1/gores-mapgen/internal/config"
	"github.com/TylerStocks1/gores-mapgen/internal/logger"
	"github.com/TylerStocks1/gores-mapgen/internal/presets"
	"github.com/TylerStocks1/gores-mapgen/internal/server"
	"github.com/TylerStocks1/gores-mapgen/internal/store"
)

func main() {
	configFile := flag.String("config", "data/mapgend.yaml", "Path to service config YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	profileDir := flag.String("profile-dir", "data/profiles", "Directory with extra profile YAML files")
	mapDir := flag.String("map-dir", "data/skeletons", "Directory with extra map skeleton YAML files")
	flag.Parse()

	// Initialize logger first (before any logging)
	logConfig, _ := logger.LoadConfig(*loggingConfig)
	logger.Initialize(logConfig)

	logger.Info("Starting map generation daemon")

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		logger.Warning("Failed to load service config, using defaults", "path", *configFile, "error", err)
	}

	if len(cfg.WebSocket.AllowedOrigins) == 0 {
		logger.Info("WebSocket CORS policy", "mode", "same-origin")
	} else if len(cfg.WebSocket.AllowedOrigins) == 1 && cfg.WebSocket.AllowedOrigins[0] == "*" {
		logger.Warning("WebSocket CORS allows all origins (not recommended for production)")
	} else {
		logger.Info("WebSocket CORS policy", "allowed_origins", cfg.WebSocket.AllowedOrigins)
	}

	provider := presets.Multi{
		presets.Builtin{},
		presets.Dir{ProfileDir: *profileDir, MapDir: *mapDir},
	}

	// Resolve everything once at startup so preset typos fail fast
	// instead of surfacing on the first client request.
	profiles, err := provider.GenerationConfigs()
	if err != nil {
		log.Fatalf("Failed to load profiles: %v", err)
	}
	maps, err := provider.MapConfigs()
	if err != nil {
		log.Fatalf("Failed to load map skeletons: %v", err)
	}
	logger.Info("Presets loaded", "profiles", len(profiles), "maps", len(maps))

	if _, err := presets.Profile(provider, cfg.Generation.DefaultProfile); err != nil {
		log.Fatalf("Default profile not available: %v", err)
	}
	if _, err := presets.Skeleton(provider, cfg.Generation.DefaultMap); err != nil {
		log.Fatalf("Default map skeleton not available: %v", err)
	}

	var st *store.Store
	if cfg.Store.Driver != "" {
		dsn := cfg.Store.DSN
		if dsn == "" {
			dsn = cfg.Store.Path
		}
		st, err = store.Open(cfg.Store.Driver, dsn)
		if err != nil {
			log.Fatalf("Failed to open map archive: %v", err)
		}
		defer st.Close()
		logger.Info("Map archive opened", "driver", cfg.Store.Driver)
	} else {
		logger.Info("Map archive disabled")
	}

	srv := server.New(cfg, provider, st)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("WebSocket server error: %v", err)
		}
	}()

	logger.Info("Map generation daemon running", "listen", cfg.Listen,
		"default_profile", cfg.Generation.DefaultProfile, "default_map", cfg.Generation.DefaultMap)
	logger.Info("Press Ctrl+C to shutdown")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down daemon")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Daemon stopped")
}
