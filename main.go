package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"param-registry-backend/internal/domain"
	"param-registry-backend/internal/env"
	"param-registry-backend/internal/handler"
	"param-registry-backend/internal/manifest"
	"param-registry-backend/internal/palette"
	"param-registry-backend/internal/repository"
	memoryrepo "param-registry-backend/internal/repository/memory"
	sqliterepo "param-registry-backend/internal/repository/sqlite"
	"param-registry-backend/internal/routes"
	"param-registry-backend/internal/service"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg := env.MustLoad()
	logger.Info("konfiguration geladen",
		zap.String("data_source", cfg.DataSource),
		zap.String("server_addr", cfg.ServerAddr),
		zap.String("schema_file", cfg.SchemaFile),
		zap.String("palette_file", cfg.PaletteFile),
		zap.Float64("rate_limit", cfg.RateLimit),
		zap.Int("max_fields", cfg.MaxFields),
	)

	if cfg.PaletteFile != "" {
		if _, err := palette.LoadCSV(cfg.PaletteFile, logger); err != nil {
			logger.Fatal("palette konnte nicht geladen werden", zap.Error(err))
		}
	}

	repo, cleanup := mustInitRepo(cfg, logger)
	if cleanup != nil {
		defer cleanup()
	}

	svc := service.NewParamService(repo, logger)

	if cfg.SchemaFile != "" {
		declareManifest(cfg.SchemaFile, svc, logger)
	}

	sh := handler.NewSchemaHandler(svc, logger)
	ch := handler.NewColorHandler(svc, logger)

	r := chi.NewRouter()
	routes.Setup(r, sh, ch, logger, cfg.RateLimit)

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		logger.Info("server wird gestartet", zap.String("adresse", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server wird heruntergefahren")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("erzwungenes herunterfahren", zap.Error(err))
	}
	logger.Info("server gestoppt")
}

// mustInitRepo erstellt je nach DATA_SOURCE das passende SchemaRepository.
// Bei "sqlite" schließt die zurückgegebene cleanup-Funktion die DB-Verbindung.
func mustInitRepo(cfg env.Config, logger *zap.Logger) (repository.SchemaRepository, func()) {
	switch cfg.DataSource {
	case "sqlite":
		repo, err := sqliterepo.NewSchemaRepository(cfg.SQLiteDSN, cfg.MaxFields, logger)
		if err != nil {
			logger.Fatal("sqlite-repository konnte nicht initialisiert werden", zap.Error(err))
		}
		return repo, func() { _ = repo.Close() }

	default:
		return memoryrepo.NewSchemaRepository(cfg.MaxFields, logger), nil
	}
}

// declareManifest meldet alle Schemas aus dem Manifest an. Bereits vorhandene
// Schemas werden übersprungen, damit ein Neustart gegen eine gefüllte
// SQLite-Datenbank nicht fehlschlägt.
func declareManifest(path string, svc *service.ParamService, logger *zap.Logger) {
	m, err := manifest.Load(path)
	if err != nil {
		logger.Fatal("manifest konnte nicht geladen werden", zap.Error(err))
	}

	ctx := context.Background()
	for i := range m.Schemas {
		err := svc.DeclareSchema(ctx, &m.Schemas[i])
		switch {
		case errors.Is(err, domain.ErrAlreadyExists):
			logger.Warn("schema bereits vorhanden, übersprungen",
				zap.String("schema", m.Schemas[i].Name))
		case err != nil:
			logger.Fatal("schema aus manifest konnte nicht angemeldet werden",
				zap.String("schema", m.Schemas[i].Name), zap.Error(err))
		default:
			logger.Info("schema aus manifest angemeldet",
				zap.String("schema", m.Schemas[i].Name))
		}
	}
}
