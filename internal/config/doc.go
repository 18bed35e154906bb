// Package config loads shelf's settings: the storage driver and its
// connection, the late fee policy, the console output format, and the HTTP
// port and log level. Values come from defaults, an optional shelf.yaml, and
// SHELF_-prefixed environment variables, in increasing precedence.
package config
