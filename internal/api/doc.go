// Package api exposes the catalog, membership and loan operations over HTTP.
// Handlers decode and validate JSON bodies, call one service operation, and
// map service errors to status codes with messages safe to show a client.
package api
