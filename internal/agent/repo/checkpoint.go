package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/claimpilot/server/internal/agent/model"
	errx "github.com/claimpilot/server/internal/core/error"
	logx "github.com/claimpilot/server/pkg/logger"
)

// RedisCheckpointStore persists whole conversation states as JSON documents,
// one key per thread. A plain SET gives the required last-write-wins
// semantics; the engine serializes writes per thread.
type RedisCheckpointStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisCheckpointStore(rdb redis.Cmdable, ttl time.Duration) *RedisCheckpointStore {
	return &RedisCheckpointStore{rdb: rdb, ttl: ttl}
}

func (r *RedisCheckpointStore) threadKey(threadID string) string {
	return fmt.Sprintf("thread:%s:state", threadID)
}

func (r *RedisCheckpointStore) Load(ctx context.Context, threadID string) (*model.ConversationState, error) {
	key := r.threadKey(threadID)

	raw, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.NewConversationState(threadID), nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load thread state from redis")
		return nil, errx.WrapRedis(err)
	}

	var state model.ConversationState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		logx.Error().Err(err).Str("thread_id", threadID).Msg("failed to unmarshal thread state")
		return nil, fmt.Errorf("unmarshal thread state: %w", err)
	}
	return &state, nil
}

func (r *RedisCheckpointStore) Save(ctx context.Context, threadID string, state *model.ConversationState) error {
	b, err := json.Marshal(state)
	if err != nil {
		logx.Error().Err(err).Str("thread_id", threadID).Msg("failed to marshal thread state")
		return fmt.Errorf("marshal thread state: %w", err)
	}
	key := r.threadKey(threadID)

	if err := r.rdb.Set(ctx, key, b, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to save thread state to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisCheckpointStore) Clear(ctx context.Context, threadID string) error {
	key := r.threadKey(threadID)
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete thread state from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisCheckpointStore) TurnCount(ctx context.Context, threadID string) (int, error) {
	state, err := r.Load(ctx, threadID)
	if err != nil {
		return 0, err
	}
	return len(state.Turns), nil
}

var _ model.CheckpointStore = (*RedisCheckpointStore)(nil)
