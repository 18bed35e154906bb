// Package postgres provides PostgreSQL-backed implementations of the store
// interfaces defined in internal/store, the embedded schema migrations, and
// the mapping from PostgreSQL error codes to store errors.
//
// Listing and search queries are built with goqu's postgres dialect; single-row
// statements are written as plain SQL.
package postgres
