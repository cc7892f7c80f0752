package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rivayastudio/rivaya-backend/pkg/config"
)

const scanBatchSize = 200

// RedisStore implements Store on top of a Redis connection. Records are
// persisted without TTLs; a value lives until explicitly deleted.
type RedisStore struct {
	raw *redis.Client
}

// NewRedis bootstraps a Redis-backed store and verifies connectivity.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{raw: raw}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.DB == 0 {
		opts.DB = cfg.DB
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.raw == nil {
		return nil, errors.New("redis store not initialized")
	}
	value, err := s.raw.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if s.raw == nil {
		return errors.New("redis store not initialized")
	}
	return s.raw.Set(ctx, key, value, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if s.raw == nil {
		return errors.New("redis store not initialized")
	}
	return s.raw.Del(ctx, key).Err()
}

// ScanPrefix walks the keyspace with SCAN and fetches matching values in
// batches. Concurrent writers may add or remove keys mid-scan; the
// result is not a consistent snapshot.
func (s *RedisStore) ScanPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	if s.raw == nil {
		return nil, errors.New("redis store not initialized")
	}

	var keys []string
	iter := s.raw.Scan(ctx, 0, prefix+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan %q: %w", prefix, err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	entries := make([]Entry, 0, len(keys))
	for start := 0; start < len(keys); start += scanBatchSize {
		end := min(start+scanBatchSize, len(keys))
		batch := keys[start:end]
		values, err := s.raw.MGet(ctx, batch...).Result()
		if err != nil {
			return nil, fmt.Errorf("mget %q: %w", prefix, err)
		}
		for i, raw := range values {
			// Deleted between SCAN and MGET.
			if raw == nil {
				continue
			}
			str, ok := raw.(string)
			if !ok {
				continue
			}
			entries = append(entries, Entry{Key: batch[i], Value: []byte(str)})
		}
	}
	return entries, nil
}

// Ping verifies the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	if s.raw == nil {
		return errors.New("redis store not initialized")
	}
	return s.raw.Ping(ctx).Err()
}

// Close shuts down the underlying client if available.
func (s *RedisStore) Close() error {
	if s.raw == nil {
		return nil
	}
	return s.raw.Close()
}
