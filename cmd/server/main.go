package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Mainadeveloper/food-waste-app/internal/auth"
	"github.com/Mainadeveloper/food-waste-app/internal/config"
	"github.com/Mainadeveloper/food-waste-app/internal/model"
	"github.com/Mainadeveloper/food-waste-app/internal/recommender"
	"github.com/Mainadeveloper/food-waste-app/internal/storage"
	"github.com/Mainadeveloper/food-waste-app/internal/storage/csvfile"
	"github.com/Mainadeveloper/food-waste-app/internal/storage/sqlite"
	"github.com/Mainadeveloper/food-waste-app/internal/web"
	"github.com/Mainadeveloper/food-waste-app/pkg/logging"
)

func main() {
	logging.Setup()

	cfg := config.Load()
	if cfg.SessionSecret == "" {
		slog.Error("SESSION_SECRET is required")
		os.Exit(1)
	}

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "backend", cfg.StoreBackend)

	// Model artifacts load once and are shared read-only across sessions.
	artifact, err := model.Load(cfg.ModelDir)
	if err != nil {
		slog.Error("Failed to load model artifacts", "dir", cfg.ModelDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Model artifacts loaded", "dir", cfg.ModelDir, "features", len(artifact.FeatureColumns()))

	tables := recommender.DefaultTables()
	handler := web.NewHandler(
		store,
		auth.NewPasswordAuthenticator(store),
		auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL),
		recommender.New(tables, artifact),
		tables.Vocabulary,
		slog.Default(),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      web.NewRouter(handler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("Server starting", "address", server.Addr, "url", fmt.Sprintf("http://localhost%s", server.Addr))
	if err := server.ListenAndServe(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func openStore(cfg config.Config) (storage.Store, error) {
	switch cfg.StoreBackend {
	case "csv":
		return csvfile.New(cfg.DataDir)
	case "sqlite":
		return sqlite.New(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
