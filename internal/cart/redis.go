package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Carts are abandoned more often than they are checked out; the TTL keeps
// Redis from accumulating them forever, refreshed on every write.
const cartTTL = 30 * 24 * time.Hour

// RedisBackend persists carts as JSON blobs under cart:<session>.
type RedisBackend struct {
	client *redis.Client
}

func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client}
}

func (r *RedisBackend) Load(ctx context.Context, session string) ([]byte, error) {
	data, err := r.client.Get(ctx, redisKey(session)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

func (r *RedisBackend) Save(ctx context.Context, session string, data []byte) error {
	if err := r.client.Set(ctx, redisKey(session), data, cartTTL).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisBackend) Delete(ctx context.Context, session string) error {
	if err := r.client.Del(ctx, redisKey(session)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func redisKey(session string) string {
	return fmt.Sprintf("cart:%s", session)
}
