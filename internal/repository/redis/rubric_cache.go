package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spenceodom/nes-staff-scorecard/business/rubric"
)

// RubricCache is a best-effort read-through cache for resolved rubrics.
// Entries expire on a short TTL so a version published with a back-dated
// effective month becomes visible without manual invalidation.
type RubricCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ rubric.Cache = (*RubricCache)(nil)

func NewRubricCache(client *redis.Client, ttl time.Duration) *RubricCache {
	return &RubricCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RubricCache) GetRubric(ctx context.Context, month string) (rubric.Resolved, bool, error) {
	key := fmt.Sprintf("rubric:resolved:%s", month)

	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return rubric.Resolved{}, false, nil
	}
	if err != nil {
		return rubric.Resolved{}, false, fmt.Errorf("failed to get rubric from Redis: %w", err)
	}

	var resolved rubric.Resolved
	if err := json.Unmarshal([]byte(val), &resolved); err != nil {
		return rubric.Resolved{}, false, fmt.Errorf("failed to unmarshal cached rubric: %w", err)
	}

	return resolved, true, nil
}

func (c *RubricCache) SetRubric(ctx context.Context, month string, resolved rubric.Resolved) error {
	key := fmt.Sprintf("rubric:resolved:%s", month)

	jsonData, err := json.Marshal(resolved)
	if err != nil {
		return fmt.Errorf("failed to marshal rubric: %w", err)
	}

	if err := c.client.Set(ctx, key, jsonData, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store rubric in Redis: %w", err)
	}

	return nil
}
