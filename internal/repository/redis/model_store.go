package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"materialAdvisor/business/recommend"
	"materialAdvisor/domain"

	"github.com/redis/go-redis/v9"
)

const defaultHistorySize = 10

// ModelStore keeps the serving model under one key and the last few
// versions in a capped list.
type ModelStore struct {
	client      *redis.Client
	key         string
	historySize int64
}

var _ recommend.ModelRepository = (*ModelStore)(nil)

func NewModelStore(client *redis.Client, key string) *ModelStore {
	return &ModelStore{
		client:      client,
		key:         key,
		historySize: defaultHistorySize,
	}
}

func (s *ModelStore) historyKey() string {
	return s.key + ":history"
}

func (s *ModelStore) LoadModel(ctx context.Context) (domain.Model, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Model{}, domain.ErrModelNotFound
		}
		return domain.Model{}, fmt.Errorf("failed to get model from Redis: %w", err)
	}

	var model domain.Model
	if err := json.Unmarshal([]byte(val), &model); err != nil {
		return domain.Model{}, fmt.Errorf("failed to unmarshal model: %w", err)
	}

	return model, nil
}

// SaveModel replaces the current model and records it in the history list
// in one transaction.
func (s *ModelStore) SaveModel(ctx context.Context, model domain.Model) error {
	raw, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key, raw, 0)
		pipe.LPush(ctx, s.historyKey(), raw)
		pipe.LTrim(ctx, s.historyKey(), 0, s.historySize-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store model in Redis: %w", err)
	}

	return nil
}

// history returns previously saved models, newest first.
func (s *ModelStore) history(ctx context.Context) ([]domain.Model, error) {
	vals, err := s.client.LRange(ctx, s.historyKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read model history: %w", err)
	}

	out := make([]domain.Model, 0, len(vals))
	for _, v := range vals {
		var m domain.Model
		if err := json.Unmarshal([]byte(v), &m); err != nil {
			return nil, fmt.Errorf("failed to unmarshal model history: %w", err)
		}
		out = append(out, m)
	}
	return out, nil
}
