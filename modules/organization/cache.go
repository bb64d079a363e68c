package organization

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// PlanCache caches the organization -> plan ID mapping so that limit
// checks do not hit the database on every create.
type PlanCache interface {
	Get(ctx context.Context, orgID uuid.UUID) (string, bool)
	Set(ctx context.Context, orgID uuid.UUID, planID string) error
	Delete(ctx context.Context, orgID uuid.UUID) error
}

// NoopPlanCache disables caching, useful for tests.
type NoopPlanCache struct{}

func (NoopPlanCache) Get(_ context.Context, _ uuid.UUID) (string, bool) { return "", false }
func (NoopPlanCache) Set(_ context.Context, _ uuid.UUID, _ string) error {
	return nil
}
func (NoopPlanCache) Delete(_ context.Context, _ uuid.UUID) error { return nil }

type redisPlanCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisPlanCache returns a Redis-backed PlanCache with the given TTL.
func NewRedisPlanCache(client redis.UniversalClient, ttl time.Duration) PlanCache {
	return &redisPlanCache{client: client, ttl: ttl}
}

func cacheKey(orgID uuid.UUID) string {
	return "org:plan:" + orgID.String()
}

func (c *redisPlanCache) Get(ctx context.Context, orgID uuid.UUID) (string, bool) {
	planID, err := c.client.Get(ctx, cacheKey(orgID)).Result()
	if err != nil {
		// Cache misses and Redis failures read the same: fall through
		// to storage.
		return "", false
	}
	return planID, true
}

func (c *redisPlanCache) Set(ctx context.Context, orgID uuid.UUID, planID string) error {
	return c.client.Set(ctx, cacheKey(orgID), planID, c.ttl).Err()
}

func (c *redisPlanCache) Delete(ctx context.Context, orgID uuid.UUID) error {
	return c.client.Del(ctx, cacheKey(orgID)).Err()
}
