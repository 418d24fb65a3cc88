package planchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"
)

const tierCacheKeyPrefix = "planchange:tiers:"

// CachedTierSource is a read-through Redis cache in front of another TierSource.
// Redis errors never fail a lookup; the wrapped source answers instead.
type CachedTierSource struct {
	next   TierSource
	client *redis.Client
	ttl    time.Duration
}

func NewCachedTierSource(next TierSource, client *redis.Client, ttl time.Duration) *CachedTierSource {
	return &CachedTierSource{next: next, client: client, ttl: ttl}
}

func tierCacheKey(planID uint) string {
	return fmt.Sprintf("%s%d", tierCacheKeyPrefix, planID)
}

func (s *CachedTierSource) TiersForPlan(ctx context.Context, planID uint) ([]Tier, error) {
	key := tierCacheKey(planID)

	raw, err := s.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var tiers []Tier
		jsonErr := json.Unmarshal(raw, &tiers)
		if jsonErr == nil {
			return tiers, nil
		}
		fiberlog.Warnf("[PlanChange] Dropping unreadable cached tiers for plan %d: %v", planID, jsonErr)
	case !errors.Is(err, redis.Nil):
		fiberlog.Warnf("[PlanChange] Tier cache read failed for plan %d: %v", planID, err)
	}

	tiers, err := s.next.TiersForPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(tiers)
	if err != nil {
		return tiers, nil
	}
	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		fiberlog.Warnf("[PlanChange] Tier cache write failed for plan %d: %v", planID, err)
	}
	return tiers, nil
}

// Invalidate drops the cached tiers of a plan.
func (s *CachedTierSource) Invalidate(ctx context.Context, planID uint) error {
	return s.client.Del(ctx, tierCacheKey(planID)).Err()
}
