// Package redis provides Redis connection management with startup retry
// and a healthcheck probe, used by the cached billing-status store.
package redis
