package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"gemini-chat-backend/internal/models"
)

const DefaultChatTurnsKey = "chat:turns"

// RedisChatTurnRepo keeps the log in one sorted set scored by the insert
// timestamp in microseconds. Members are the JSON-encoded turns.
type RedisChatTurnRepo struct {
	client *redis.Client
	key    string
	clock  *Clock
}

func NewRedisChatTurnRepo(client *redis.Client, key string) *RedisChatTurnRepo {
	if key == "" {
		key = DefaultChatTurnsKey
	}
	return &RedisChatTurnRepo{client: client, key: key, clock: processClock}
}

func (r *RedisChatTurnRepo) Append(ctx context.Context, t *models.ChatTurn) error {
	t.ID = uuid.New()
	t.Timestamp = r.clock.Now()

	data, err := json.Marshal(t)
	if err != nil {
		return &StoreError{Op: "append", Err: err}
	}

	err = r.client.ZAdd(ctx, r.key, redis.Z{
		Score:  float64(t.Timestamp.UnixMicro()),
		Member: string(data),
	}).Err()
	if err != nil {
		return &StoreError{Op: "append", Err: err}
	}
	return nil
}

func (r *RedisChatTurnRepo) ListRecent(ctx context.Context, limit int) ([]*models.ChatTurn, error) {
	limit = normalizeLimit(limit)

	members, err := r.client.ZRevRange(ctx, r.key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, &StoreError{Op: "list", Err: err}
	}

	turns := make([]*models.ChatTurn, 0, len(members))
	for _, m := range members {
		t := &models.ChatTurn{}
		if err := json.Unmarshal([]byte(m), t); err != nil {
			return nil, &StoreError{Op: "list", Err: fmt.Errorf("decode turn: %w", err)}
		}
		turns = append(turns, t)
	}
	return turns, nil
}

// ClearAll counts and deletes the set inside one MULTI block.
func (r *RedisChatTurnRepo) ClearAll(ctx context.Context) (int64, error) {
	var count *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		count = pipe.ZCard(ctx, r.key)
		pipe.Del(ctx, r.key)
		return nil
	})
	if err != nil {
		return 0, &StoreError{Op: "clear", Err: err}
	}
	return count.Val(), nil
}
