package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/vobe/staff-auth-service/application/port/inbound"
	"github.com/vobe/staff-auth-service/infrastructure/service/logger"
)

type RateLimitConfig struct {
	Enabled       bool
	RedisURL      string
	IPAttempts    int
	IPWindow      time.Duration
	UserAttempts  int
	UserWindow    time.Duration
	BlockDuration time.Duration
}

// redisRateLimitService keeps counters and blocks in Redis so every replica
// shares them.
type redisRateLimitService struct {
	redisClient *redis.Client
	logger      logger.Logger
}

// NewRateLimitService returns the Redis-backed limiter when enabled, and the
// in-process limiter otherwise.
func NewRateLimitService(ctx context.Context, config RateLimitConfig, log logger.Logger) (inbound.RateLimitService, error) {
	if !config.Enabled {
		log.Info(ctx, "Redis rate limiting disabled, using in-process limiter", nil)
		return NewLocalRateLimitService(config.IPAttempts), nil
	}

	opt, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisClient := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info(ctx, "Rate limiting service initialized", map[string]interface{}{
		"ip_attempts":    config.IPAttempts,
		"ip_window":      config.IPWindow.String(),
		"user_attempts":  config.UserAttempts,
		"user_window":    config.UserWindow.String(),
		"block_duration": config.BlockDuration.String(),
	})

	return NewRedisRateLimitService(redisClient, log), nil
}

func NewRedisRateLimitService(client *redis.Client, log logger.Logger) inbound.RateLimitService {
	return &redisRateLimitService{
		redisClient: client,
		logger:      log,
	}
}

func (s *redisRateLimitService) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	currentCount, err := s.GetAttempts(ctx, key)
	if err != nil {
		return false, err
	}

	isUnderLimit := currentCount < limit

	s.logger.Debug(ctx, "Rate limit check", map[string]interface{}{
		"key":         key,
		"current":     currentCount,
		"limit":       limit,
		"under_limit": isUnderLimit,
	})

	return isUnderLimit, nil
}

func (s *redisRateLimitService) Increment(ctx context.Context, key string, window time.Duration) error {
	pipeline := s.redisClient.TxPipeline()
	incrCmd := pipeline.Incr(ctx, key)
	pipeline.Expire(ctx, key, window)

	if _, err := pipeline.Exec(ctx); err != nil {
		return fmt.Errorf("failed to increment rate limit: %w", err)
	}

	s.logger.Debug(ctx, "Rate limit incremented", map[string]interface{}{
		"key":    key,
		"count":  incrCmd.Val(),
		"window": window.String(),
	})

	return nil
}

func (s *redisRateLimitService) Block(ctx context.Context, key string, duration time.Duration, reason string) error {
	blockKey := blockKey(key)

	pipeline := s.redisClient.TxPipeline()
	pipeline.HSet(ctx, blockKey, map[string]interface{}{
		"reason":         reason,
		"blocked_at":     time.Now().Unix(),
		"duration":       duration.Seconds(),
		"correlation_id": logger.CorrelationID(ctx),
	})
	pipeline.Expire(ctx, blockKey, duration)

	if _, err := pipeline.Exec(ctx); err != nil {
		return fmt.Errorf("failed to block key: %w", err)
	}

	s.logger.Warn(ctx, "Key blocked due to rate limit exceeded", map[string]interface{}{
		"key":      key,
		"duration": duration.String(),
		"reason":   reason,
	})

	return nil
}

func (s *redisRateLimitService) IsBlocked(ctx context.Context, key string) (bool, error) {
	exists, err := s.redisClient.Exists(ctx, blockKey(key)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check block status: %w", err)
	}
	return exists > 0, nil
}

func (s *redisRateLimitService) GetAttempts(ctx context.Context, key string) (int, error) {
	count, err := s.redisClient.Get(ctx, key).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get attempts: %w", err)
	}
	return count, nil
}

func blockKey(key string) string {
	return "blocked:" + key
}
