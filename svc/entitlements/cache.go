package entitlements

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultCacheTTL = 5 * time.Minute

// CachedStore wraps a Store with a Redis read-through cache. Reads hit
// Redis first and fall back to the inner store; writes go to the inner
// store and refresh the cache. Cache failures degrade to the inner store
// and are logged at debug level, never surfaced to callers.
type CachedStore struct {
	inner  Store
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

// CachedStoreOption configures a CachedStore.
type CachedStoreOption func(*CachedStore)

// WithCacheTTL overrides the default 5 minute entry lifetime.
func WithCacheTTL(ttl time.Duration) CachedStoreOption {
	return func(s *CachedStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithCacheLogger sets the logger for cache degradation events.
func WithCacheLogger(log *slog.Logger) CachedStoreOption {
	return func(s *CachedStore) {
		if log != nil {
			s.log = log
		}
	}
}

// NewCachedStore wraps inner with a Redis cache.
// Panics if inner or client is nil.
func NewCachedStore(inner Store, client *redis.Client, opts ...CachedStoreOption) *CachedStore {
	if inner == nil {
		panic("entitlements: cached store requires an inner store")
	}
	if client == nil {
		panic("entitlements: cached store requires a redis client")
	}
	s := &CachedStore{
		inner:  inner,
		client: client,
		ttl:    defaultCacheTTL,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func cacheKey(householdID uuid.UUID) string {
	return "billing:household:" + householdID.String()
}

func (s *CachedStore) GetBillingRecord(ctx context.Context, householdID uuid.UUID) (BillingRecord, error) {
	key := cacheKey(householdID)
	if raw, err := s.client.Get(ctx, key).Bytes(); err == nil {
		var rec BillingRecord
		if err := json.Unmarshal(raw, &rec); err == nil {
			return rec, nil
		}
		// Corrupt entry, drop it and fall through to the inner store.
		_ = s.client.Del(ctx, key).Err()
	} else if err != redis.Nil {
		s.log.DebugContext(ctx, "billing cache read failed", "error", err)
	}

	rec, err := s.inner.GetBillingRecord(ctx, householdID)
	if err != nil {
		return BillingRecord{}, err
	}
	s.put(ctx, key, rec)
	return rec, nil
}

func (s *CachedStore) SaveBillingRecord(ctx context.Context, rec BillingRecord) error {
	if err := s.inner.SaveBillingRecord(ctx, rec); err != nil {
		return err
	}
	s.put(ctx, cacheKey(rec.HouseholdID), rec)
	return nil
}

func (s *CachedStore) put(ctx context.Context, key string, rec BillingRecord) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.log.DebugContext(ctx, "billing cache write failed", "error", err)
	}
}
