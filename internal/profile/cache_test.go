package profile

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/jobscout/internal/types"
)

// countingProvider counts inner lookups so tests can tell a cache hit from
// a fall-through.
type countingProvider struct {
	inner    *MemoryProvider
	topCalls int
}

func (c *countingProvider) Profile(ctx context.Context, userID string) (*types.UserProfile, error) {
	return c.inner.Profile(ctx, userID)
}

func (c *countingProvider) TopSkills(ctx context.Context, limit int) ([]SkillDemand, error) {
	c.topCalls++
	return c.inner.TopSkills(ctx, limit)
}

func unreachableRedis() *redis.Client {
	// Port 1 refuses connections; MaxRetries -1 keeps the failure fast.
	return redis.NewClient(&redis.Options{
		Addr:         "127.0.0.1:1",
		DialTimeout:  50 * time.Millisecond,
		ReadTimeout:  50 * time.Millisecond,
		WriteTimeout: 50 * time.Millisecond,
		MaxRetries:   -1,
	})
}

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestCachedTopSkills_RedisUnreachableFallsBackToInner(t *testing.T) {
	counting := &countingProvider{inner: providerWithUsers(t)}
	cached := NewCachedProvider(counting, unreachableRedis(), zap.NewNop())

	demand, err := cached.TopSkills(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, 1, counting.topCalls)
	require.Len(t, demand, 2)
	assert.Equal(t, SkillDemand{Skill: "javascript", Users: 2}, demand[0])
	assert.Equal(t, SkillDemand{Skill: "python", Users: 1}, demand[1])
}

func TestCachedTopSkills_SecondCallServedFromCache(t *testing.T) {
	counting := &countingProvider{inner: providerWithUsers(t)}
	cached := NewCachedProvider(counting, testRedis(t), zap.NewNop())

	first, err := cached.TopSkills(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, counting.topCalls)

	second, err := cached.TopSkills(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, 1, counting.topCalls, "cache hit must not reach the inner provider")
	assert.Equal(t, first, second)
}

func TestCachedTopSkills_CacheKeyPerLimit(t *testing.T) {
	counting := &countingProvider{inner: providerWithUsers(t)}
	cached := NewCachedProvider(counting, testRedis(t), zap.NewNop())

	_, err := cached.TopSkills(context.Background(), 10)
	require.NoError(t, err)
	_, err = cached.TopSkills(context.Background(), 1)
	require.NoError(t, err)

	// Different limits are different aggregates so each misses once.
	assert.Equal(t, 2, counting.topCalls)
}

func TestCachedTopSkills_CorruptEntryRefilled(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	require.NoError(t, mr.Set(topSkillsKey(10), "not json"))

	counting := &countingProvider{inner: providerWithUsers(t)}
	cached := NewCachedProvider(counting, rdb, zap.NewNop())

	demand, err := cached.TopSkills(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, counting.topCalls)
	assert.Len(t, demand, 2)

	// The bad entry was replaced; the next call is a hit.
	_, err = cached.TopSkills(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, counting.topCalls)
}

func TestCachedProfile_PassesThroughEvenWithoutRedis(t *testing.T) {
	counting := &countingProvider{inner: providerWithUsers(t)}
	cached := NewCachedProvider(counting, unreachableRedis(), zap.NewNop())

	got, err := cached.Profile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
}

func providerWithUsers(t *testing.T) *MemoryProvider {
	t.Helper()
	provider := NewMemoryProvider()
	provider.Put(profileWithSkills("u1", "javascript", "python"))
	provider.Put(profileWithSkills("u2", "javascript"))
	return provider
}
