package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"gemini-chat-backend/internal/models"
	"gemini-chat-backend/internal/repository"
	"gemini-chat-backend/internal/services"
)

// Short, fixed details per failure class; provider and store messages stay in the logs.
const (
	detailsProvider = "Failed to generate response from AI"
	detailsStore    = "Failed to save chat turn"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func errorResp(message, details string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error:     message,
		Details:   details,
		RequestID: r.Header.Get("X-Request-ID"),
	}
}

// handleServiceError maps the relay's typed errors to HTTP. fallback is the
// operation-specific message used for every 500.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var (
		valErr   *services.ValidationError
		provErr  *services.ProviderError
		storeErr *repository.StoreError
	)

	switch {
	case errors.As(err, &valErr):
		message := "Validation failed"
		if m, ok := valErr.Fields["message"]; ok {
			message = m
		}
		resp := errorResp(message, "", r)
		resp.Fields = valErr.Fields
		writeJSON(w, http.StatusBadRequest, resp)
	case errors.As(err, &provErr):
		writeJSON(w, http.StatusInternalServerError, errorResp(fallback, detailsProvider, r))
	case errors.As(err, &storeErr) && storeErr.Op == "append":
		writeJSON(w, http.StatusInternalServerError, errorResp(fallback, detailsStore, r))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResp(fallback, "", r))
	}
}
