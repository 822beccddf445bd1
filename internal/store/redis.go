package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "cardempire:save:"

type RedisStore struct {
	Client *redis.Client
}

func OpenRedis(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &RedisStore{Client: client}, nil
}

func (s *RedisStore) Save(ctx context.Context, slot string, data []byte) error {
	if err := ValidateSlot(slot); err != nil {
		return err
	}
	if err := s.Client.Set(ctx, redisKeyPrefix+slot, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set save in redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, slot string) ([]byte, error) {
	val, err := s.Client.Get(ctx, redisKeyPrefix+slot).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get save from redis: %w", err)
	}
	return val, nil
}

func (s *RedisStore) Delete(ctx context.Context, slot string) error {
	n, err := s.Client.Del(ctx, redisKeyPrefix+slot).Result()
	if err != nil {
		return fmt.Errorf("failed to delete save from redis: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	var out []string
	iter := s.Client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		out = append(out, strings.TrimPrefix(iter.Val(), redisKeyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan saves in redis: %w", err)
	}
	slices.Sort(out)
	return out, nil
}

func (s *RedisStore) Close() error {
	if s.Client != nil {
		return s.Client.Close()
	}
	return nil
}
