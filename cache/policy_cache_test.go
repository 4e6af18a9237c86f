package cache_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warden-authz/warden/cache"
	logger "github.com/warden-authz/warden/logging"
	"github.com/warden-authz/warden/model"
)

func TestMain(m *testing.M) {
	logger.InitLogger(os.TempDir())
	os.Exit(m.Run())
}

// countingStore is an in-memory stand-in for the policy store adapter.
type countingStore struct {
	mu       sync.Mutex
	policies map[string][]model.Policy
	scans    int
	err      error
}

func newCountingStore() *countingStore {
	return &countingStore{policies: make(map[string][]model.Policy)}
}

func (s *countingStore) ScanBySubject(ctx context.Context, subject string) ([]model.Policy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scans++
	if s.err != nil {
		return nil, s.err
	}
	return s.policies[subject], nil
}

func (s *countingStore) set(subject string, policies ...model.Policy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policies[subject] = policies
}

func (s *countingStore) scanCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scans
}

func newTestCache(t *testing.T, store cache.PolicyStore, secret []byte) (*cache.PolicyCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c, err := cache.NewPolicyCache(client, store, 300*time.Second, secret)
	require.NoError(t, err)
	return c, mr
}

func alicePolicy() model.Policy {
	return model.Policy{
		ID:      "row-1",
		Level:   model.LevelGroup,
		Subject: "alice@x.com",
		Object:  "group1",
		Role:    "customer",
	}
}

func TestGetPoliciesMissThenHit(t *testing.T) {
	store := newCountingStore()
	store.set("alice@x.com", alicePolicy())
	c, _ := newTestCache(t, store, nil)
	ctx := context.Background()

	first, err := c.GetPolicies(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, []model.Policy{alicePolicy()}, first)
	assert.Equal(t, 1, store.scanCount())

	// Served from cache within the TTL, identical result.
	for i := 0; i < 3; i++ {
		again, err := c.GetPolicies(ctx, "alice@x.com")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, 1, store.scanCount())
}

func TestGetPoliciesNormalizesSubject(t *testing.T) {
	store := newCountingStore()
	store.set("alice@x.com", alicePolicy())
	c, _ := newTestCache(t, store, nil)
	ctx := context.Background()

	first, err := c.GetPolicies(ctx, "Alice@X.com")
	require.NoError(t, err)
	assert.Len(t, first, 1)

	// A differently-cased spelling hits the same cache entry.
	_, err = c.GetPolicies(ctx, "ALICE@X.COM")
	require.NoError(t, err)
	assert.Equal(t, 1, store.scanCount())
}

func TestGetPoliciesTTLExpiry(t *testing.T) {
	store := newCountingStore()
	store.set("alice@x.com", alicePolicy())
	c, mr := newTestCache(t, store, nil)
	ctx := context.Background()

	_, err := c.GetPolicies(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, 1, store.scanCount())

	mr.FastForward(301 * time.Second)

	_, err = c.GetPolicies(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, 2, store.scanCount())
}

func TestGetPoliciesCacheUnreachableFallsThrough(t *testing.T) {
	store := newCountingStore()
	store.set("alice@x.com", alicePolicy())
	c, mr := newTestCache(t, store, nil)
	ctx := context.Background()

	mr.Close()

	policies, err := c.GetPolicies(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, []model.Policy{alicePolicy()}, policies)

	// Still works on repeated calls; every read goes to the store.
	_, err = c.GetPolicies(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, 2, store.scanCount())
}

func TestGetPoliciesCorruptEntryTreatedAsMiss(t *testing.T) {
	store := newCountingStore()
	store.set("alice@x.com", alicePolicy())
	c, mr := newTestCache(t, store, nil)
	ctx := context.Background()

	require.NoError(t, mr.Set(c.Key("alice@x.com"), "not json"))

	policies, err := c.GetPolicies(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, []model.Policy{alicePolicy()}, policies)
	assert.Equal(t, 1, store.scanCount())
}

func TestGetPoliciesStoreErrorPropagates(t *testing.T) {
	store := newCountingStore()
	store.err = errors.New("store is down")
	c, _ := newTestCache(t, store, nil)

	_, err := c.GetPolicies(context.Background(), "alice@x.com")
	assert.ErrorContains(t, err, "store is down")
}

func TestInvalidateRewarms(t *testing.T) {
	store := newCountingStore()
	store.set("alice@x.com", alicePolicy())
	c, _ := newTestCache(t, store, nil)
	ctx := context.Background()

	_, err := c.GetPolicies(ctx, "alice@x.com")
	require.NoError(t, err)

	// The store changes under the cache; within the TTL the stale entry
	// is still served.
	updated := alicePolicy()
	updated.Role = "customeradmin"
	store.set("alice@x.com", updated)

	stale, err := c.GetPolicies(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, "customer", stale[0].Role)

	require.NoError(t, c.Invalidate(ctx, "alice@x.com"))

	fresh, err := c.GetPolicies(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, "customeradmin", fresh[0].Role)
}

func TestEncryptedEntriesRoundTrip(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")
	store := newCountingStore()
	store.set("alice@x.com", alicePolicy())
	c, mr := newTestCache(t, store, secret)
	ctx := context.Background()

	first, err := c.GetPolicies(ctx, "alice@x.com")
	require.NoError(t, err)

	// The entry at rest must not leak the subject.
	raw, err := mr.Get(c.Key("alice@x.com"))
	require.NoError(t, err)
	assert.NotContains(t, raw, "alice@x.com")
	assert.False(t, strings.Contains(raw, "group1"))

	again, err := c.GetPolicies(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, first, again)
	assert.Equal(t, 1, store.scanCount())
}

func TestNewPolicyCacheRejectsBadKey(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	_, err := cache.NewPolicyCache(client, newCountingStore(), time.Minute, []byte("short"))
	assert.Error(t, err)
}
