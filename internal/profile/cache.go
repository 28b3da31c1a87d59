package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jonathan/jobscout/internal/types"
)

// TopSkillsTTL is how long a demand aggregate stays cached. Demand shifts
// slowly; an hour keeps the scheduler off the users table.
const TopSkillsTTL = time.Hour

// CachedProvider caches TopSkills aggregates in Redis in front of another
// Provider. Cache failures are logged and fall through to the inner
// provider; Redis being down never breaks a lookup.
type CachedProvider struct {
	inner Provider
	rdb   *redis.Client
	ttl   time.Duration
	log   *zap.Logger
}

// NewCachedProvider wraps inner with a Redis-backed TopSkills cache.
func NewCachedProvider(inner Provider, rdb *redis.Client, log *zap.Logger) *CachedProvider {
	return &CachedProvider{inner: inner, rdb: rdb, ttl: TopSkillsTTL, log: log}
}

// Profile passes through uncached. Profiles are read per request and stale
// skill data would skew match scores.
func (p *CachedProvider) Profile(ctx context.Context, userID string) (*types.UserProfile, error) {
	return p.inner.Profile(ctx, userID)
}

// TopSkills serves from Redis when possible, refilling on miss.
func (p *CachedProvider) TopSkills(ctx context.Context, limit int) ([]SkillDemand, error) {
	key := topSkillsKey(limit)

	cached, err := p.rdb.Get(ctx, key).Result()
	if err == nil {
		var demand []SkillDemand
		if jsonErr := json.Unmarshal([]byte(cached), &demand); jsonErr == nil {
			return demand, nil
		}
		p.log.Warn("discarding unreadable cached skill demand", zap.String("key", key))
	} else if err != redis.Nil {
		p.log.Warn("skill demand cache lookup failed", zap.Error(err))
	}

	demand, err := p.inner.TopSkills(ctx, limit)
	if err != nil {
		return nil, err
	}

	if payload, jsonErr := json.Marshal(demand); jsonErr == nil {
		if setErr := p.rdb.Set(ctx, key, payload, p.ttl).Err(); setErr != nil {
			p.log.Warn("skill demand cache write failed", zap.Error(setErr))
		}
	}

	return demand, nil
}

func topSkillsKey(limit int) string {
	return fmt.Sprintf("jobscout:top_skills:%d", limit)
}

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}
