// Package events publishes circulation events (a book was borrowed, a loan was
// returned) to any number of handlers.
//
// Services emit events after their transaction commits, without knowing which
// handlers consume them. The application registers a LogHandler that writes an
// audit line per event; tests register their own handlers.
package events
