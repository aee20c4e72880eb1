package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
)

// RedisService stores snapshots as plain Redis strings under an optional prefix
type RedisService struct {
	Client *redis.Client
	Prefix string // e.g. "school:" -> school:students
}

// NewRedisService creates a new RedisService instance
func NewRedisService(client *redis.Client, prefix string) *RedisService {
	return &RedisService{
		Client: client,
		Prefix: prefix,
	}
}

func (s *RedisService) key(k string) string {
	return s.Prefix + k
}

// Get returns the value stored at key, ErrNotFound if unset
func (s *RedisService) Get(ctx context.Context, key string) (string, error) {
	val, err := s.Client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		log.Printf("Error getting key %s: %v", key, err)
		return "", fmt.Errorf("failed to get %s from Redis: %w", key, err)
	}
	return val, nil
}

// Set overwrites the value at key
func (s *RedisService) Set(ctx context.Context, key, value string) error {
	if err := s.Client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		log.Printf("Error setting key %s: %v", key, err)
		return fmt.Errorf("failed to set %s in Redis: %w", key, err)
	}
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (s *RedisService) Remove(ctx context.Context, key string) error {
	if err := s.Client.Del(ctx, s.key(key)).Err(); err != nil {
		log.Printf("Error removing key %s: %v", key, err)
		return fmt.Errorf("failed to remove %s from Redis: %w", key, err)
	}
	return nil
}

// SetMany writes all pairs in one MULTI/EXEC pipeline so a snapshot save
// lands as a unit.
func (s *RedisService) SetMany(ctx context.Context, pairs map[string]string) error {
	pipe := s.Client.TxPipeline()
	for k, v := range pairs {
		pipe.Set(ctx, s.key(k), v, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("Error writing %d keys: %v", len(pairs), err)
		return fmt.Errorf("failed to write snapshot to Redis: %w", err)
	}
	return nil
}

// RedisOptions configures InitializeRedisClient
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// InitializeRedisClient creates and tests a Redis client connection
func InitializeRedisClient(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("could not connect to Redis at %s: %w", opts.Addr, err)
	}

	log.Printf("Successfully connected to Redis %s DB %d", opts.Addr, opts.DB)
	return rdb, nil
}
