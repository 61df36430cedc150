package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"gemini-chat-backend/internal/models"
)

type chatService interface {
	SubmitTurn(ctx context.Context, message string) (*models.ChatTurn, error)
	History(ctx context.Context) ([]*models.ChatTurn, error)
	ClearHistory(ctx context.Context) (int64, error)
}

type ChatHandler struct {
	chat chatService
}

func NewChatHandler(chat chatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Send handles POST /api/chat.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	// An empty body is treated like a missing message.
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid request body", "", r))
		return
	}

	turn, err := h.chat.SubmitTurn(r.Context(), req.Message)
	if err != nil {
		handleServiceError(w, r, err, "Failed to process chat message")
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{
		Message:   turn.Message,
		Response:  turn.Response,
		Timestamp: turn.Timestamp,
	})
}

// History handles GET /api/chat/history. Turns are newest first; the client
// reverses them for display.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	turns, err := h.chat.History(r.Context())
	if err != nil {
		handleServiceError(w, r, err, "Failed to fetch chat history")
		return
	}
	if turns == nil {
		turns = []*models.ChatTurn{}
	}
	writeJSON(w, http.StatusOK, turns)
}

// ClearHistory handles DELETE /api/chat/history.
func (h *ChatHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	n, err := h.chat.ClearHistory(r.Context())
	if err != nil {
		handleServiceError(w, r, err, "Failed to clear chat history")
		return
	}
	writeJSON(w, http.StatusOK, models.ClearHistoryResponse{
		Message: "Chat history cleared",
		Deleted: n,
	})
}
