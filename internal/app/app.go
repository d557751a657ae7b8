package app

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"panelscan/internal/catalog"
	"panelscan/internal/config"
	"panelscan/internal/intake"
	"panelscan/internal/logger"
	"panelscan/internal/repository/sqlite"
	"panelscan/internal/routes"
	"panelscan/internal/services"
	"panelscan/internal/services/ai"
	"panelscan/internal/services/storage"
	hub "panelscan/internal/services/websocket"
)

type App struct {
	config     *config.Config
	logger     *logger.Logger
	db         *sqlite.DB
	validator  *intake.Validator
	manager    *services.Manager
	hubService *hub.HubService
	handler    http.Handler
}

func New() (*App, error) {
	cfg := config.Load()
	log := logger.New(cfg.LogDirectory)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	repo := sqlite.NewAnalysisRepository(db)
	store := storage.NewStore(cfg.UploadDirectory)
	hubService := hub.NewHubService(log)

	detectors := make([]services.Detector, 0, cfg.ProcessingWorkers)
	for i := 0; i < cfg.ProcessingWorkers; i++ {
		detectors = append(detectors, ai.NewDetectorService(log))
	}
	manager := services.NewManager(detectors, repo, store, hubService, cfg.QueueCapacity, log)

	validator := intake.NewValidator(intake.Options{
		MaxSize:       cfg.MaxUploadSize,
		AcceptedTypes: cfg.AcceptedTypes,
	})

	cat := catalog.New(catalog.Showcase())

	handler := routes.SetupRoutes(cfg, validator, manager, repo, store, cat, hubService, log)

	return &App{
		config:     cfg,
		logger:     log,
		db:         db,
		validator:  validator,
		manager:    manager,
		hubService: hubService,
		handler:    handler,
	}, nil
}

func (a *App) Run() error {
	go a.hubService.Run()

	fmt.Printf("🔆 Panel Inspection Server\n")
	fmt.Printf("📍 URL: http://localhost:%d\n", a.config.Port)
	fmt.Printf("📁 Uploads: %s\n", a.config.UploadDirectory)
	fmt.Printf("🗄  Database: %s\n", a.config.DBPath)

	a.logger.Info("Server listening on port %d", a.config.Port)
	return http.ListenAndServe(fmt.Sprintf(":%d", a.config.Port), a.handler)
}

// Close stops the worker pool and releases the database.
func (a *App) Close() error {
	a.manager.Stop()
	return a.db.Close()
}
