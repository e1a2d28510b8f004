package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"mineral-catalog-service/internal/infrastructure/config"
)

// ErrCacheMiss is returned by Get when the key does not exist
var ErrCacheMiss = errors.New("cache miss")

// InterfaceRedisService defines the Redis service interface
type InterfaceRedisService interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) InterfaceRedisService {
	return NewRedisServiceWithClient(redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	}))
}

// NewRedisServiceWithClient wraps an existing client
func NewRedisServiceWithClient(client *redis.Client) InterfaceRedisService {
	return &RedisService{Client: client}
}

// 1 Set stores value as JSON with expiration
func (s *RedisService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Client.Set(ctx, key, jsonValue, expiration).Err()
}

// 2 Get decodes the JSON value of key into dest
func (s *RedisService) Get(ctx context.Context, key string, dest interface{}) error {
	val, err := s.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(val, dest)
}

// 3 Delete deletes a key from Redis
func (s *RedisService) Delete(ctx context.Context, key string) error {
	return s.Client.Del(ctx, key).Err()
}

// 4 Ping checks the connection
func (s *RedisService) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}

// 5 Close closes the client
func (s *RedisService) Close() error {
	return s.Client.Close()
}
