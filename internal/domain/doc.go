// Package domain contains the core business entities, value objects, and
// domain logic of the library: books, members, loans and the late fee policy.
// It is independent of any specific storage or delivery mechanism.
package domain
