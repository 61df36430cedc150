package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"gemini-chat-backend/internal/models"
)

type turnStore interface {
	Append(ctx context.Context, t *models.ChatTurn) error
	ListRecent(ctx context.Context, limit int) ([]*models.ChatTurn, error)
	ClearAll(ctx context.Context) (int64, error)
}

// steppingClock advances one second per call starting from a fixed instant.
func steppingClock() *Clock {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return NewClock(func() time.Time {
		base = base.Add(time.Second)
		return base
	})
}

// frozenClock returns the same instant forever, to exercise tie ordering.
func frozenClock() *Clock {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return NewClock(func() time.Time { return at })
}

// runStoreContract checks the behaviour every conversation store must share.
// newStore must return an empty store that uses the given clock.
func runStoreContract(t *testing.T, newStore func(t *testing.T, clock *Clock) turnStore) {
	t.Run("append assigns identity and timestamp", func(t *testing.T) {
		s := newStore(t, steppingClock())
		ctx := context.Background()

		turn := &models.ChatTurn{Message: "Hello", Response: "Hi there!"}
		if err := s.Append(ctx, turn); err != nil {
			t.Fatalf("Append: %v", err)
		}
		if turn.ID == uuid.Nil {
			t.Fatalf("expected ID to be assigned")
		}
		if turn.Timestamp.IsZero() {
			t.Fatalf("expected timestamp to be assigned")
		}

		got, err := s.ListRecent(ctx, 10)
		if err != nil {
			t.Fatalf("ListRecent: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected 1 turn, got %d", len(got))
		}
		if got[0].ID != turn.ID || got[0].Message != "Hello" || got[0].Response != "Hi there!" {
			t.Fatalf("unexpected turn: %+v", got[0])
		}
		if !got[0].Timestamp.Equal(turn.Timestamp) {
			t.Fatalf("timestamp mismatch: stored %s, returned %s", got[0].Timestamp, turn.Timestamp)
		}
	})

	t.Run("list is newest first and bounded", func(t *testing.T) {
		s := newStore(t, steppingClock())
		ctx := context.Background()

		for i := 0; i < DefaultHistoryLimit+5; i++ {
			turn := &models.ChatTurn{Message: fmt.Sprintf("m%d", i), Response: fmt.Sprintf("r%d", i)}
			if err := s.Append(ctx, turn); err != nil {
				t.Fatalf("Append %d: %v", i, err)
			}
		}

		got, err := s.ListRecent(ctx, 0)
		if err != nil {
			t.Fatalf("ListRecent: %v", err)
		}
		if len(got) != DefaultHistoryLimit {
			t.Fatalf("expected %d turns with default limit, got %d", DefaultHistoryLimit, len(got))
		}
		if got[0].Message != fmt.Sprintf("m%d", DefaultHistoryLimit+4) {
			t.Fatalf("expected newest turn first, got %q", got[0].Message)
		}
		for i := 1; i < len(got); i++ {
			if got[i].Timestamp.After(got[i-1].Timestamp) {
				t.Fatalf("turn %d (%s) is newer than turn %d (%s)", i, got[i].Timestamp, i-1, got[i-1].Timestamp)
			}
		}

		three, err := s.ListRecent(ctx, 3)
		if err != nil {
			t.Fatalf("ListRecent(3): %v", err)
		}
		if len(three) != 3 {
			t.Fatalf("expected 3 turns, got %d", len(three))
		}
	})

	t.Run("equal timestamps keep non-increasing order", func(t *testing.T) {
		s := newStore(t, frozenClock())
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			if err := s.Append(ctx, &models.ChatTurn{Message: fmt.Sprintf("m%d", i), Response: "r"}); err != nil {
				t.Fatalf("Append: %v", err)
			}
		}

		got, err := s.ListRecent(ctx, 10)
		if err != nil {
			t.Fatalf("ListRecent: %v", err)
		}
		if len(got) != 5 {
			t.Fatalf("expected 5 turns, got %d", len(got))
		}
		for i := 1; i < len(got); i++ {
			if got[i].Timestamp.After(got[i-1].Timestamp) {
				t.Fatalf("turns out of order at %d", i)
			}
		}
	})

	t.Run("clear all is idempotent", func(t *testing.T) {
		s := newStore(t, steppingClock())
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			if err := s.Append(ctx, &models.ChatTurn{Message: "m", Response: "r"}); err != nil {
				t.Fatalf("Append: %v", err)
			}
		}

		n, err := s.ClearAll(ctx)
		if err != nil {
			t.Fatalf("ClearAll: %v", err)
		}
		if n != 3 {
			t.Fatalf("expected 3 deleted, got %d", n)
		}

		got, err := s.ListRecent(ctx, 10)
		if err != nil {
			t.Fatalf("ListRecent: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected empty history after clear, got %d", len(got))
		}

		n, err = s.ClearAll(ctx)
		if err != nil {
			t.Fatalf("second ClearAll: %v", err)
		}
		if n != 0 {
			t.Fatalf("expected second clear to delete nothing, got %d", n)
		}
	})
}
