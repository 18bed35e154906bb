// Package service contains the library's use cases: the catalog, membership
// and loan operations that the console and the HTTP surface call.
//
// Services receive their stores through constructor injection and depend only
// on the interfaces in internal/store, never on a concrete backend. Operations
// that write more than one row run inside a store.Transactor so the writes
// commit together or not at all.
//
// Error handling:
//   - Expected business outcomes are returned as sentinel errors (ErrUnavailable,
//     ErrLoanNotFound, ErrAlreadyReturned, ...), checked with errors.Is.
//   - Input that fails domain validation is wrapped in ErrInvalidInput.
//   - Anything the store rejected or could not execute is a *DataAccessError,
//     reported by IsDataAccessFailure. Callers log it in full and show a
//     redacted message.
package service
