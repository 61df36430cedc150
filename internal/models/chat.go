package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatTurn is one message/response exchange. ID and Timestamp are assigned
// by the store when the turn is appended.
type ChatTurn struct {
	ID        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is returned after a turn has been generated and persisted.
type ChatResponse struct {
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

type ClearHistoryResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

type HealthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}
