package kvstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// redisStore backs the persistence slots with Redis. Used by hosted
// deployments of the storefront core where the process is not colocated with
// the shopper's machine.
type redisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) Store {
	return &redisStore{
		client: client,
		prefix: prefix,
	}
}

func (r *redisStore) key(key string) string {
	if r.prefix == "" {
		return key
	}

	return Key(r.prefix, key)
}

func (r *redisStore) Get(ctx context.Context, key string, value any) (bool, error) {

	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {

		if err == redis.Nil {
			return false, nil
		}

		return false, fmt.Errorf("failed to get key %s from redis: %w", key, err)

	}

	if err := json.Unmarshal(data, value); err != nil {
		return false, fmt.Errorf("failed to unmarshal stored data for key %s: %w", key, err)
	}

	return true, nil
}

func (r *redisStore) Set(ctx context.Context, key string, value any) error {

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key %s: %w", key, err)
	}

	// Slots never expire; the session token carries its own expiry.
	err = r.client.Set(ctx, r.key(key), data, 0).Err()
	if err != nil {
		return fmt.Errorf("failed to set key %s in redis: %w", key, err)
	}

	return nil
}

func (r *redisStore) Delete(ctx context.Context, key string) error {

	err := r.client.Del(ctx, r.key(key)).Err()
	if err != nil {
		return fmt.Errorf("failed to delete key %s from redis: %w", key, err)
	}

	return nil
}

func (r *redisStore) Close() error {
	return r.client.Close()
}
