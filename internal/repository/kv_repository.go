package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/apperrors"
)

// KeyValueStore is the persistence collaborator behind sessions and
// transaction collections: opaque byte values addressed by string keys.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Count(ctx context.Context, prefix string) (int, error)
	KeysUpdatedBefore(ctx context.Context, prefix string, cutoff time.Time) ([]string, error)
}

// KVRepository provides data access methods for the kv_store table.
type KVRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewKVRepository creates a new KVRepository with the provided database connection.
func NewKVRepository(db *sql.DB) *KVRepository {
	return &KVRepository{db: db, now: time.Now}
}

// Get returns the value stored under key.
// Returns apperrors.ErrKeyNotFound when the key does not exist.
func (r *KVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE "key" = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrKeyNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query kv_store: %w", err)
	}
	return value, nil
}

// Set inserts or replaces the value stored under key.
func (r *KVRepository) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_store ("key", value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT("key") DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, key, value, formatTimestamp(r.now())); err != nil {
		return fmt.Errorf("failed to write kv_store: %w", err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *KVRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv_store WHERE "key" = ?`, key); err != nil {
		return fmt.Errorf("failed to delete from kv_store: %w", err)
	}
	return nil
}

// Count returns the number of keys starting with prefix.
// Prefixes are matched literally; "_" is not a wildcard.
func (r *KVRepository) Count(ctx context.Context, prefix string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM kv_store WHERE substr("key", 1, length(?)) = ?`
	if err := r.db.QueryRowContext(ctx, query, prefix, prefix).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count kv_store keys: %w", err)
	}
	return count, nil
}

// KeysUpdatedBefore lists keys starting with prefix whose last write is older than cutoff.
func (r *KVRepository) KeysUpdatedBefore(ctx context.Context, prefix string, cutoff time.Time) ([]string, error) {
	query := `
		SELECT "key"
		FROM kv_store
		WHERE substr("key", 1, length(?)) = ?
		AND updated_at < ?
		ORDER BY "key"
	`
	rows, err := r.db.QueryContext(ctx, query, prefix, prefix, formatTimestamp(cutoff))
	if err != nil {
		return nil, fmt.Errorf("failed to query kv_store keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan kv_store key: %w", err)
		}
		keys = append(keys, key)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating kv_store keys: %w", err)
	}
	return keys, nil
}
