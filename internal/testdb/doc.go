//go:build integration

// Package testdb provides utilities for database integration tests.
//
// Tests run against the database named by SHELF_TEST_DATABASE_URL or
// DATABASE_URL and are skipped when neither is set. Each test runs in its own
// transaction, which is rolled back when the test completes, so tests can run
// in parallel without cleaning up after themselves:
//
//	func TestMyFeature(t *testing.T) {
//	    t.Parallel()
//	    db := testdb.GetTestDBWithT(t)
//
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        books := postgres.NewPostgresBookStore(tx, nil)
//	        // ...
//	    })
//	}
package testdb
