package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gemini-chat-backend/internal/models"
)

// SQLiteChatTurnRepo stores turns in a local SQLite file. Timestamps are kept
// as unix microseconds so ordering does not depend on text collation.
type SQLiteChatTurnRepo struct {
	db    *sql.DB
	clock *Clock
}

func NewSQLiteChatTurnRepo(db *sql.DB) *SQLiteChatTurnRepo {
	return &SQLiteChatTurnRepo{db: db, clock: processClock}
}

func (r *SQLiteChatTurnRepo) Append(ctx context.Context, t *models.ChatTurn) error {
	t.ID = uuid.New()
	t.Timestamp = r.clock.Now()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO chat_turns (id, message, response, created_at_us) VALUES (?, ?, ?, ?)`,
		t.ID.String(), t.Message, t.Response, t.Timestamp.UnixMicro(),
	)
	if err != nil {
		return &StoreError{Op: "append", Err: err}
	}
	return nil
}

func (r *SQLiteChatTurnRepo) ListRecent(ctx context.Context, limit int) ([]*models.ChatTurn, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, message, response, created_at_us
		FROM chat_turns
		ORDER BY created_at_us DESC, seq DESC
		LIMIT ?`, normalizeLimit(limit))
	if err != nil {
		return nil, &StoreError{Op: "list", Err: err}
	}
	defer rows.Close()

	turns := []*models.ChatTurn{}
	for rows.Next() {
		var (
			id     string
			micros int64
			t      models.ChatTurn
		)
		if err := rows.Scan(&id, &t.Message, &t.Response, &micros); err != nil {
			return nil, &StoreError{Op: "list", Err: err}
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, &StoreError{Op: "list", Err: fmt.Errorf("invalid turn id %q: %w", id, err)}
		}
		t.ID = parsed
		t.Timestamp = time.UnixMicro(micros).UTC()
		turns = append(turns, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "list", Err: err}
	}
	return turns, nil
}

func (r *SQLiteChatTurnRepo) ClearAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM chat_turns")
	if err != nil {
		return 0, &StoreError{Op: "clear", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &StoreError{Op: "clear", Err: err}
	}
	return n, nil
}
