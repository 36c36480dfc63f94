package database

import (
	"context"
	"testing"
)

func TestMigrate(t *testing.T) {
	t.Run("creates kv_store and reports version", func(t *testing.T) {
		db, err := Open(":memory:")
		if err != nil {
			t.Fatalf("Open() returned unexpected error: %v", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(1)

		version, err := Migrate(context.Background(), db)
		if err != nil {
			t.Fatalf("Migrate() returned unexpected error: %v", err)
		}
		if version != 2 {
			t.Errorf("Expected schema version 2, got %d", version)
		}

		if _, err := db.Exec(`INSERT INTO kv_store ("key", value) VALUES ('k', 'v')`); err != nil {
			t.Errorf("Expected kv_store to accept rows: %v", err)
		}

		current, pending, err := SchemaVersion(context.Background(), db)
		if err != nil {
			t.Fatalf("SchemaVersion() returned unexpected error: %v", err)
		}
		if current != 2 || pending {
			t.Errorf("Expected version 2 with nothing pending, got %d pending=%v", current, pending)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		db, err := Open(":memory:")
		if err != nil {
			t.Fatalf("Open() returned unexpected error: %v", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(1)

		for i := 0; i < 2; i++ {
			if _, err := Migrate(context.Background(), db); err != nil {
				t.Fatalf("Migrate() run %d returned unexpected error: %v", i+1, err)
			}
		}
	})
}

func TestHealthCheck(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open() returned unexpected error: %v", err)
	}

	if err := HealthCheck(db); err != nil {
		t.Errorf("Expected healthy database, got %v", err)
	}

	db.Close()
	if err := HealthCheck(db); err == nil {
		t.Error("Expected error after close")
	}
}
