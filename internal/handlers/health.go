package handlers

import (
	"net/http"
	"time"

	"gemini-chat-backend/internal/models"
)

// Health is the liveness probe. It does not touch the provider or the store.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{Status: "ok", Time: time.Now().UTC()})
}
