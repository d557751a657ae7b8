package handlers

import (
	"net/http"

	"panelscan/internal/dto"
	"panelscan/internal/logger"
	"panelscan/internal/services"
	hub "panelscan/internal/services/websocket"
)

// HealthHandler reports pipeline liveness: queue depth and connected clients.
func HealthHandler(manager *services.Manager, hubService *hub.HubService, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, dto.Health{
			Status:     "ok",
			QueueDepth: manager.QueueDepth(),
			Clients:    hubService.ClientCount(),
		}, logger)
	}
}
