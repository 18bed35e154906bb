// Package memstore is an in-process implementation of the store interfaces.
//
// All data lives in one DB value guarded by a mutex. A transaction holds the
// mutex for its whole duration and works on a copy of the data, which replaces
// the live data on commit and is dropped on rollback, so transactions are
// serializable. Stores handed to a transaction function must not be mixed with
// the DB's own stores inside that function.
package memstore
