// Package pg provides PostgreSQL connection management built on pgx:
// pooled connections with startup retry, goose-driven schema migrations
// from an embedded filesystem, and error classification helpers shared by
// the storage layers.
package pg
