// Package entitlements is the server side of the subscription system:
// persisted household billing records, trusted purchase verification
// against the provider backend, and the HTTP surface clients call.
//
// # Verification is server-authoritative
//
// A client finishing an in-app purchase never unlocks premium by itself.
// It calls POST /purchases/verify, the service re-queries the provider
// backend with a server-held API key (see billing.RevenueCatClient), and
// only a confirmed active entitlement is recorded as household premium.
//
// # Storage
//
// Store has three implementations: MemoryStore for tests, PostgresStore
// on pgx, and CachedStore layering a Redis read-through cache over either.
//
//	store := entitlements.NewCachedStore(entitlements.NewPostgresStore(pool), redisClient)
//	svc := entitlements.NewService(store, revenueCatClient)
//	r.Mount("/entitlements", entitlements.Router(svc, checkoutClient))
package entitlements
