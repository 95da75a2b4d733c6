package snapshot

import (
	"context"
	"fmt"

	redisclient "book-weaver-api/internal/infrastructure/persistence/redis"
)

// RedisStore 基于 Redis 单键的快照存储
type RedisStore struct {
	client *redisclient.Client
	key    string
}

// NewRedisStore 创建 Redis 快照存储
func NewRedisStore(client *redisclient.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

// Load 读取快照键，键不存在时返回 (nil, nil)
func (s *RedisStore) Load(ctx context.Context) ([]byte, error) {
	val, err := s.client.Get(ctx, s.key)
	if err != nil {
		if redisclient.IsNil(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load snapshot from redis: %w", err)
	}
	return []byte(val), nil
}

// Save 整体覆盖快照键，不设过期
func (s *RedisStore) Save(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0); err != nil {
		return fmt.Errorf("failed to save snapshot to redis: %w", err)
	}
	return nil
}
