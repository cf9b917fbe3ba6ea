package otp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// keyPrefix namespaces OTP keys so the store can share a redis instance with
// other consumers.
const keyPrefix = "otp:"

// RedisStore is the shared-cache Store for multi-process deployments.
// Expiry is enforced by redis itself via the key TTL.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a RedisStore over an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Put(ctx context.Context, email, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, keyPrefix+email, code, ttl).Err(); err != nil {
		return fmt.Errorf("otp.RedisStore.Put: %w", err)
	}
	return nil
}

func (s *RedisStore) Consume(ctx context.Context, email, code string) (bool, error) {
	key := keyPrefix + email

	stored, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("otp.RedisStore.Consume: %w", err)
	}
	if stored != code {
		return false, nil
	}

	// Delete before reporting success so the code can never be replayed.
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return false, fmt.Errorf("otp.RedisStore.Consume: del: %w", err)
	}
	return true, nil
}
