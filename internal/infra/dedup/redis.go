// Package dedup remembers provider message IDs so webhook retries are processed once.
package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "barber:processed:"

// RedisStore отметки обработанных сообщений в Redis (SET NX с TTL)
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore создает хранилище отметок в Redis
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// MarkProcessed returns true when the id was not seen before and is now marked
func (s *RedisStore) MarkProcessed(ctx context.Context, provider, messageID string) (bool, error) {
	if messageID == "" {
		return false, ErrEmptyID
	}

	ok, err := s.client.SetNX(ctx, key(provider, messageID), time.Now().UTC().Format(time.RFC3339), s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%w: MarkProcessed - setnx: %v", ErrStore, err)
	}
	return ok, nil
}

// Forget снимает отметку, чтобы повтор провайдера мог быть обработан (после ошибки сохранения)
func (s *RedisStore) Forget(ctx context.Context, provider, messageID string) error {
	if err := s.client.Del(ctx, key(provider, messageID)).Err(); err != nil {
		return fmt.Errorf("%w: Forget - del: %v", ErrStore, err)
	}
	return nil
}

func key(provider, messageID string) string {
	return keyPrefix + provider + ":" + messageID
}
