package services

import (
	"context"
	"errors"
	"log"

	"gemini-chat-backend/internal/models"
	"gemini-chat-backend/internal/repository"
)

// Generator produces a reply for a single prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TurnStore is the append-only conversation log.
type TurnStore interface {
	Append(ctx context.Context, t *models.ChatTurn) error
	ListRecent(ctx context.Context, limit int) ([]*models.ChatTurn, error)
	ClearAll(ctx context.Context) (int64, error)
}

// ChatService relays one turn at a time: validate, generate, persist.
// It holds no per-conversation state between calls.
type ChatService struct {
	gen          Generator
	store        TurnStore
	historyLimit int
}

// NewChatService builds the relay. historyLimit may lower the history window
// but never raise it above repository.DefaultHistoryLimit.
func NewChatService(gen Generator, store TurnStore, historyLimit int) *ChatService {
	if historyLimit <= 0 || historyLimit > repository.DefaultHistoryLimit {
		historyLimit = repository.DefaultHistoryLimit
	}
	return &ChatService{gen: gen, store: store, historyLimit: historyLimit}
}

// SubmitTurn generates a reply for message and persists the pair. Nothing is
// stored unless the provider call succeeded.
func (s *ChatService) SubmitTurn(ctx context.Context, message string) (*models.ChatTurn, error) {
	if message == "" {
		return nil, &ValidationError{Fields: map[string]string{"message": "Message is required"}}
	}

	reply, err := s.gen.Generate(ctx, message)
	if err != nil {
		log.Printf("Chat error: generate: %v", err)
		var provErr *ProviderError
		if !errors.As(err, &provErr) {
			err = &ProviderError{Reason: "generate", Err: err}
		}
		return nil, err
	}

	turn := &models.ChatTurn{Message: message, Response: reply}
	if err := s.store.Append(ctx, turn); err != nil {
		log.Printf("Chat error: save turn: %v", err)
		return nil, asStoreError("append", err)
	}

	return turn, nil
}

// History returns the most recent turns, newest first.
func (s *ChatService) History(ctx context.Context) ([]*models.ChatTurn, error) {
	turns, err := s.store.ListRecent(ctx, s.historyLimit)
	if err != nil {
		log.Printf("History error: %v", err)
		return nil, asStoreError("list", err)
	}
	return turns, nil
}

// ClearHistory removes every stored turn and reports how many were deleted.
func (s *ChatService) ClearHistory(ctx context.Context) (int64, error) {
	n, err := s.store.ClearAll(ctx)
	if err != nil {
		log.Printf("Clear history error: %v", err)
		return 0, asStoreError("clear", err)
	}
	return n, nil
}

func asStoreError(op string, err error) error {
	var storeErr *repository.StoreError
	if errors.As(err, &storeErr) {
		return err
	}
	return &repository.StoreError{Op: op, Err: err}
}
