package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"mentor-ai/backend/internal/model"
)

const conversationIndexKey = "conversations"

type redisConversationRepository struct {
	rdb *redis.Client
}

// NewRedisConversationRepository stores snapshots under conversation:<id>
// and keeps a sorted set of ids scored by updatedAt for listing.
func NewRedisConversationRepository(rdb *redis.Client) ConversationRepository {
	return &redisConversationRepository{rdb: rdb}
}

func (r *redisConversationRepository) conversationKey(id string) string {
	return fmt.Sprintf("conversation:%s", id)
}

func (r *redisConversationRepository) Save(ctx context.Context, conv *model.Conversation) error {
	snapshot, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("could not encode conversation %s: %w", conv.ID, err)
	}
	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, r.conversationKey(conv.ID), snapshot, 0)
	pipe.ZAdd(ctx, conversationIndexKey, redis.Z{Score: float64(conv.UpdatedAt.UnixNano()), Member: conv.ID})
	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisConversationRepository) Get(ctx context.Context, id string) (*model.Conversation, error) {
	data, err := r.rdb.Get(ctx, r.conversationKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var conv model.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, fmt.Errorf("could not decode conversation %s: %w", id, err)
	}
	return &conv, nil
}

func (r *redisConversationRepository) List(ctx context.Context) ([]*model.Conversation, error) {
	ids, err := r.rdb.ZRevRange(ctx, conversationIndexKey, 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	convs := make([]*model.Conversation, 0, len(ids))
	for _, id := range ids {
		conv, err := r.Get(ctx, id)
		if err != nil {
			slog.Warn("Skipping unreadable conversation snapshot", "conversation_id", id, "error", err)
			continue
		}
		convs = append(convs, conv)
	}
	return convs, nil
}

func (r *redisConversationRepository) Delete(ctx context.Context, id string) error {
	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, r.conversationKey(id))
	pipe.ZRem(ctx, conversationIndexKey, id)
	_, err := pipe.Exec(ctx)
	return err
}
