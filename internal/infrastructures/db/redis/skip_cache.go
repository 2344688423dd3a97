package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	derr "github.com/ozzus/skip-hire/internal/domain/errors"
	"github.com/ozzus/skip-hire/internal/domain/models"
	"github.com/redis/go-redis/v9"
)

type SkipCacheRepository struct {
	redis *redis.Client
}

func NewSkipCacheRepository(redisClient *redis.Client) *SkipCacheRepository {
	return &SkipCacheRepository{redis: redisClient}
}

func (r *SkipCacheRepository) GetSkips(ctx context.Context, location models.Location) ([]models.Skip, error) {
	data, err := r.redis.Get(ctx, skipsKey(location)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, derr.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get skips: %w", err)
	}

	var skips []models.Skip
	if err := json.Unmarshal([]byte(data), &skips); err != nil {
		return nil, fmt.Errorf("unmarshal cached skips: %w", err)
	}
	if skips == nil {
		skips = []models.Skip{}
	}

	return skips, nil
}

func (r *SkipCacheRepository) SetSkips(ctx context.Context, location models.Location, skips []models.Skip, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(skips)
	if err != nil {
		return fmt.Errorf("marshal skips for cache: %w", err)
	}

	if err := r.redis.Set(ctx, skipsKey(location), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set skips: %w", err)
	}

	return nil
}

func skipsKey(location models.Location) string {
	return fmt.Sprintf("skips:%s:%s",
		strings.ToUpper(strings.TrimSpace(location.Postcode)),
		strings.ToLower(strings.TrimSpace(location.Area)),
	)
}
