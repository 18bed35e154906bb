// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the library's business rules, so the services run unchanged against
// Postgres or the in-memory store.
package store
