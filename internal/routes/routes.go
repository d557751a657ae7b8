package routes

import (
	"net/http"
	"os"
	"path/filepath"

	"panelscan/internal/catalog"
	"panelscan/internal/config"
	"panelscan/internal/handlers"
	"panelscan/internal/intake"
	"panelscan/internal/logger"
	"panelscan/internal/middleware"
	"panelscan/internal/repository"
	"panelscan/internal/services"
	"panelscan/internal/services/storage"
	hub "panelscan/internal/services/websocket"
)

// dynamicHTMLHandler serves /path as /static/path.html if the file exists; otherwise 404.
func dynamicHTMLHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	if path == "/" {
		path = "/index"
	}

	filePath := filepath.Join("static", path+".html")

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, filePath)
}

// SetupRoutes registers HTTP routes, static file serving, API endpoints,
// and wraps the mux with the authentication middleware.
func SetupRoutes(
	cfg *config.Config,
	validator *intake.Validator,
	manager *services.Manager,
	repo repository.AnalysisRepository,
	store *storage.Store,
	cat *catalog.Catalog,
	hubService *hub.HubService,
	logger *logger.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Static files
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	// Analysis endpoints
	mux.HandleFunc("/api/analyses", handlers.ListAnalysesHandler(repo, logger))
	mux.HandleFunc("/api/analyses/upload", handlers.UploadAnalysisHandler(validator, manager, repo, store, logger))
	mux.HandleFunc("/api/analyses/get", handlers.GetAnalysisHandler(repo, logger))
	mux.HandleFunc("/api/analyses/delete", handlers.DeleteAnalysisHandler(repo, store, logger))
	mux.HandleFunc("/api/analyses/stats", handlers.AnalysisStatsHandler(repo, logger))

	// Showcase endpoints
	mux.HandleFunc("/api/demo", handlers.DemoListHandler(cat, logger))
	mux.HandleFunc("/api/demo/get", handlers.DemoGetHandler(cat, logger))
	mux.HandleFunc("/api/demo/random", handlers.DemoRandomHandler(cat, logger))
	mux.HandleFunc("/api/demo/search", handlers.DemoSearchHandler(cat, logger))
	mux.HandleFunc("/api/demo/stats", handlers.DemoStatsHandler(cat, logger))
	mux.HandleFunc("/api/demo/recommended", handlers.DemoRecommendedHandler(cat, logger))
	mux.HandleFunc("/api/demo/breakdown", handlers.DemoBreakdownHandler(cat, logger))

	// Live events and health
	mux.HandleFunc("/api/ws", handlers.EventsWebsocketHandler(hubService, logger))
	mux.HandleFunc("/api/health", handlers.HealthHandler(manager, hubService, logger))

	// Log endpoints
	mux.HandleFunc("/logs/info", handlers.ShowLogsHandler(cfg, "info.log"))
	mux.HandleFunc("/logs/warning", handlers.ShowLogsHandler(cfg, "warning.log"))
	mux.HandleFunc("/logs/error", handlers.ShowLogsHandler(cfg, "error.log"))

	mux.HandleFunc("/logs/info/clear", handlers.ClearLogsHandler(logger, "info.log"))
	mux.HandleFunc("/logs/warning/clear", handlers.ClearLogsHandler(logger, "warning.log"))
	mux.HandleFunc("/logs/error/clear", handlers.ClearLogsHandler(logger, "error.log"))

	// Auth endpoints
	mux.HandleFunc("/auth/login", handlers.LoginHandler(cfg, logger))
	mux.HandleFunc("/auth/logout", handlers.LogoutHandler)

	// Automatic HTML handler mapping for example: /settings -> /static/settings.html
	mux.HandleFunc("/", dynamicHTMLHandler)

	// Apply middleware
	return middleware.AuthMiddleware(mux)
}
