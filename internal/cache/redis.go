package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aven-ai/support-agent/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// AnswerCache stores clean, unblocked responses keyed by the normalized
// question. Best-effort: a failing cache must never fail a request.
type AnswerCache interface {
	Get(ctx context.Context, question string) (*models.QueryResponse, bool)
	Set(ctx context.Context, question string, response models.QueryResponse)
}

func Connect(ctx context.Context, addr string, password string, maxRetries int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            addr,
		Password:        password,
		DB:              0,
		MaxRetries:      3,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
	})

	var err error
	for i := range maxRetries {
		if i > 0 {
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Info().Dur("backoff", backoff).Msg("Waiting before Redis retry")
			time.Sleep(backoff)
		}

		log.Info().Int("attempt", i+1).Int("max_retries", maxRetries).Msg("Connecting to Redis")

		err = client.Ping(ctx).Err()
		if err == nil {
			log.Info().Int("attempts_needed", i+1).Msg("Redis connected")
			return client, nil
		}

		log.Warn().Err(err).Int("attempt", i+1).Msg("Redis ping failed")
	}

	return nil, fmt.Errorf("failed to connect to Redis after %d attempts: %w", maxRetries, err)
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl == 0 {
		ttl = time.Hour
	}

	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RedisCache) Get(ctx context.Context, question string) (*models.QueryResponse, bool) {
	data, err := c.client.Get(ctx, cacheKey(question)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("Answer cache lookup failed")
		}
		return nil, false
	}

	var response models.QueryResponse
	if err := json.Unmarshal(data, &response); err != nil {
		log.Warn().Err(err).Msg("Failed to decode cached answer")
		return nil, false
	}

	return &response, true
}

func (c *RedisCache) Set(ctx context.Context, question string, response models.QueryResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to encode answer for caching")
		return
	}

	if err := c.client.Set(ctx, cacheKey(question), data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("Failed to store answer in cache")
	}
}

func cacheKey(question string) string {
	return "answer:" + strings.ToLower(strings.TrimSpace(question))
}
