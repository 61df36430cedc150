package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"gemini-chat-backend/internal/models"
)

// ChatTurnRepo is the PostgreSQL-backed conversation store.
type ChatTurnRepo struct {
	pool  *pgxpool.Pool
	clock *Clock
}

func NewChatTurnRepo(pool *pgxpool.Pool) *ChatTurnRepo {
	return &ChatTurnRepo{pool: pool, clock: processClock}
}

func (r *ChatTurnRepo) Append(ctx context.Context, t *models.ChatTurn) error {
	t.ID = uuid.New()
	t.Timestamp = r.clock.Now()

	query := `INSERT INTO chat_turns (id, message, response, created_at)
		VALUES ($1, $2, $3, $4)`

	if _, err := r.pool.Exec(ctx, query, t.ID, t.Message, t.Response, t.Timestamp); err != nil {
		return &StoreError{Op: "append", Err: err}
	}
	return nil
}

func (r *ChatTurnRepo) ListRecent(ctx context.Context, limit int) ([]*models.ChatTurn, error) {
	query := `SELECT id, message, response, created_at
		FROM chat_turns
		ORDER BY created_at DESC, seq DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, normalizeLimit(limit))
	if err != nil {
		return nil, &StoreError{Op: "list", Err: err}
	}
	defer rows.Close()

	turns := []*models.ChatTurn{}
	for rows.Next() {
		t := &models.ChatTurn{}
		if err := rows.Scan(&t.ID, &t.Message, &t.Response, &t.Timestamp); err != nil {
			return nil, &StoreError{Op: "list", Err: err}
		}
		t.Timestamp = t.Timestamp.UTC()
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "list", Err: err}
	}
	return turns, nil
}

// ClearAll deletes every turn in a single statement, so readers see either
// the full log or an empty one.
func (r *ChatTurnRepo) ClearAll(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, "DELETE FROM chat_turns")
	if err != nil {
		return 0, &StoreError{Op: "clear", Err: err}
	}
	return tag.RowsAffected(), nil
}
