package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"bookstore/internal/domain"
)

const cartKeyPrefix = "cart:"

// RedisStore keeps session carts in Redis with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) GetCart(ctx context.Context, key string) ([]domain.CartItem, error) {
	data, err := s.client.Get(ctx, cartKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []domain.CartItem{}, nil
		}
		return nil, err
	}
	return decodeCart(data)
}

func (s *RedisStore) SetCart(ctx context.Context, key string, items []domain.CartItem) error {
	data, err := encodeCart(items)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, cartKeyPrefix+key, data, s.ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context, key string) error {
	return s.client.Del(ctx, cartKeyPrefix+key).Err()
}

var _ Store = (*RedisStore)(nil)
