package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores collection blobs as plain Redis strings without
// expiration.
type RedisBackend struct {
	client *redis.Client
}

func OpenRedis(addr string) (*RedisBackend, error) {
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &RedisBackend{client: client}, nil
}

func (b *RedisBackend) Get(key string) ([]byte, error) {
	v, err := b.client.Get(context.Background(), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	return v, err
}

func (b *RedisBackend) Put(key string, value []byte) error {
	return b.client.Set(context.Background(), key, value, 0).Err()
}

func (b *RedisBackend) Delete(key string) error {
	return b.client.Del(context.Background(), key).Err()
}

func (b *RedisBackend) Close() error {
	return b.client.Close()
}
