package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-prediction-service/internal/models"
)

// RedisCache caches run output in Redis: predictions per fixture and parlay
// candidates per batch.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// RedisCacheConfig holds Redis cache configuration
type RedisCacheConfig struct {
	Addr     string // e.g., "localhost:6379"
	Password string
	DB       int
	TTL      time.Duration // e.g., 30 * time.Minute
}

// NewRedisCache creates a new Redis cache
func NewRedisCache(config RedisCacheConfig, logger zerolog.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	return &RedisCache{
		client: client,
		ttl:    config.TTL,
		logger: logger.With().Str("component", "redis_cache").Logger(),
	}
}

// SetPrediction caches one fixture prediction
func (c *RedisCache) SetPrediction(ctx context.Context, prediction *models.Prediction) error {
	key := fmt.Sprintf("prediction:%s", prediction.FixtureID)

	data, err := json.Marshal(prediction)
	if err != nil {
		return fmt.Errorf("failed to marshal prediction: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in Redis: %w", err)
	}

	c.logger.Debug().
		Str("key", key).
		Dur("ttl", c.ttl).
		Msg("cached prediction")

	return nil
}

// GetPrediction retrieves a cached fixture prediction
func (c *RedisCache) GetPrediction(ctx context.Context, fixtureID string) (*models.Prediction, error) {
	key := fmt.Sprintf("prediction:%s", fixtureID)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("prediction not found in cache")
	} else if err != nil {
		return nil, fmt.Errorf("failed to get from Redis: %w", err)
	}

	var prediction models.Prediction
	if err := json.Unmarshal(data, &prediction); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prediction: %w", err)
	}

	return &prediction, nil
}

// SetRunResult caches a whole run in one pipeline: every prediction keyed
// by fixture and the ranked parlay list keyed by batch.
func (c *RedisCache) SetRunResult(ctx context.Context, result *models.RunResult) error {
	pipe := c.client.Pipeline()

	for fixtureID, prediction := range result.Predictions {
		data, err := json.Marshal(prediction)
		if err != nil {
			c.logger.Error().Err(err).Str("fixture_id", fixtureID).Msg("failed to marshal prediction")
			continue
		}
		pipe.Set(ctx, fmt.Sprintf("prediction:%s", fixtureID), data, c.ttl)
	}

	parlays, err := json.Marshal(result.Parlays)
	if err != nil {
		return fmt.Errorf("failed to marshal parlays: %w", err)
	}
	pipe.Set(ctx, fmt.Sprintf("parlays:%s", result.BatchID), parlays, c.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to execute pipeline: %w", err)
	}

	c.logger.Info().
		Str("batch_id", result.BatchID).
		Int("predictions", len(result.Predictions)).
		Int("parlays", len(result.Parlays)).
		Msg("cached run result")

	return nil
}

// GetParlays retrieves the ranked parlay candidates cached for a batch
func (c *RedisCache) GetParlays(ctx context.Context, batchID string) ([]*models.ParlayCandidate, error) {
	key := fmt.Sprintf("parlays:%s", batchID)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("parlays not found in cache")
	} else if err != nil {
		return nil, fmt.Errorf("failed to get from Redis: %w", err)
	}

	var parlays []*models.ParlayCandidate
	if err := json.Unmarshal(data, &parlays); err != nil {
		return nil, fmt.Errorf("failed to unmarshal parlays: %w", err)
	}

	return parlays, nil
}

// Ping checks Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
