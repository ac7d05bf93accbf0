package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idempotencyKeyPrefix  = "splitit:idempotency:"
	processingPlaceholder = "processing"
)

// IdempotencyStore backs Idempotency-Key replay with redis. A key is claimed
// with a placeholder while the first request is in flight, then updated with
// the response it produced.
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// CheckAndSet returns the stored response when the key has been seen before.
// Otherwise it claims the key, storing response when one is provided and the
// placeholder when not.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	redisKey := idempotencyKeyPrefix + key

	existing, err := s.client.Get(ctx, redisKey).Bytes()
	if err == nil {
		return true, existing, nil
	}
	if !errors.Is(err, redis.Nil) {
		return false, nil, err
	}

	if response != nil {
		if err := s.client.Set(ctx, redisKey, response, ttl).Err(); err != nil {
			return false, nil, err
		}
		return false, nil, nil
	}

	claimed, err := s.client.SetNX(ctx, redisKey, processingPlaceholder, ttl).Result()
	if err != nil {
		return false, nil, err
	}
	if !claimed {
		// A concurrent request claimed the key between Get and SetNX
		existing, err := s.client.Get(ctx, redisKey).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return false, nil, err
		}
		return true, existing, nil
	}

	return false, nil, nil
}

// Update replaces the claimed key with the final response.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, idempotencyKeyPrefix+key, response, ttl).Err()
}
