package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/database"
	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The schema is created by the same goose migrations production runs.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Every pooled connection would otherwise get its own empty database
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if _, err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// CleanDatabase removes every key-value entry.
// Useful for reusing the same database across multiple tests.
func CleanDatabase(t *testing.T, db *sql.DB) {
	t.Helper()

	if _, err := db.Exec("DELETE FROM kv_store"); err != nil {
		t.Fatalf("Failed to clean kv_store: %v", err)
	}
}

// CountKeys returns the number of kv_store entries whose key starts with prefix.
//
// Example usage:
//
//	count := testutil.CountKeys(t, db, "session_")
func CountKeys(t *testing.T, db *sql.DB, prefix string) int {
	t.Helper()

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM kv_store WHERE substr("key", 1, length(?)) = ?`, prefix, prefix).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count keys with prefix %s: %v", prefix, err)
	}

	return count
}

// AssertKeyCount asserts that the number of keys with the prefix matches expected.
//
// Example usage:
//
//	testutil.AssertKeyCount(t, db, "transactions_", 1)
func AssertKeyCount(t *testing.T, db *sql.DB, prefix string, expected int) {
	t.Helper()

	actual := CountKeys(t, db, prefix)
	if actual != expected {
		t.Errorf("Expected %d keys with prefix %s, got %d", expected, prefix, actual)
	}
}
