package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pageza/menuqr/backend/config"
	"github.com/pageza/menuqr/backend/internal/database"
	"github.com/pageza/menuqr/backend/internal/ingest"
	"github.com/pageza/menuqr/backend/internal/logging"
	"github.com/pageza/menuqr/backend/internal/provider"
	"github.com/pageza/menuqr/backend/internal/repository"
	"github.com/pageza/menuqr/backend/internal/router"
	"github.com/pageza/menuqr/backend/internal/server"
	"github.com/pageza/menuqr/backend/internal/service"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logging.New(cfg.LogLevel, cfg.Environment.Strict())
	log.WithField("environment", cfg.Environment).Info("Starting menu service")

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if cfg.AutoMigrate {
		if err := database.RunMigrations(db, cfg.MigrationsDir, log); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	rdb, err := database.NewRedisClient(cfg, log)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	defer rdb.Close()

	var archive service.Archiver
	s3cfg, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		log.WithError(err).Warn("Upload archive disabled")
	} else if fa := service.NewFileArchive(s3cfg); fa != nil {
		archive = fa
	}

	textProvider := provider.NewOpenAIProvider(provider.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.ProviderTimeout,
	}, logging.Component(log, "provider"))
	if cfg.OpenAIAPIKey == "" {
		log.Warn("OPENAI_API_KEY not set; generation, extraction and chat will fail")
	}

	repo := repository.NewStore(db)
	pipeline := ingest.NewPipeline(textProvider, logging.Component(log, "ingest"))
	drafts := ingest.NewDraftStore(rdb)

	services := router.Services{
		Auth:        service.NewAuthService(repo, rdb, cfg.JWTSecret, cfg.TokenTTL, logging.Component(log, "auth")),
		Restaurants: service.NewRestaurantService(repo, cfg.PublicBaseURL, logging.Component(log, "restaurants")),
		Menus:       service.NewMenuService(repo, logging.Component(log, "menus")),
		Ingest:      service.NewIngestService(repo, pipeline, drafts, archive, logging.Component(log, "ingest")),
		Chat:        service.NewChatService(repo, textProvider, logging.Component(log, "chat")),
	}

	engine := router.SetupRouter(services, rdb, cfg.CORSOrigins, log)
	srv := server.New(cfg, engine, logging.Component(log, "server"))

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Received signal")
	}

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("Server stopped")
}
