package sessionstore

import (
	"carerouter-service/internal/app/contracts"
	"carerouter-service/internal/pkg/exceptions"
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	client *redis.Client
}

var (
	_ contracts.SessionStore = (*redisStore)(nil)
	_ contracts.Taker        = (*redisStore)(nil)
)

func NewRedisStore(client *redis.Client) contracts.SessionStore {
	return &redisStore{client: client}
}

func (r *redisStore) Get(ctx context.Context, key string) (string, error) {
	data, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	} else if err != nil {
		return "", exceptions.ErrStoreGet(err, key)
	}
	return data, nil
}

func (r *redisStore) Set(ctx context.Context, key string, value string, exp time.Duration) error {
	err := r.client.Set(ctx, key, value, exp).Err()
	if err != nil {
		return exceptions.ErrStoreSet(err, key)
	}
	return nil
}

// Take uses GETDEL, available since redis 6.2.
func (r *redisStore) Take(ctx context.Context, key string) (string, error) {
	data, err := r.client.GetDel(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	} else if err != nil {
		return "", exceptions.ErrStoreDelete(err, key)
	}
	return data, nil
}

func (r *redisStore) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		return exceptions.ErrStoreDelete(err, key)
	}
	return nil
}
