package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/record"
	"github.com/cmlabs-hris/hrms-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const schema = `
	CREATE TABLE IF NOT EXISTS kv_records (
		key        TEXT PRIMARY KEY,
		value      JSONB NOT NULL,
		version    BIGINT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

type RecordStore struct {
	db *database.DB
}

func NewRecordStore(db *database.DB) *RecordStore {
	return &RecordStore{db: db}
}

// Migrate creates the backing table if it does not exist yet.
func (r *RecordStore) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create kv_records table: %w", err)
	}
	return nil
}

// Get implements record.Store.
func (r *RecordStore) Get(ctx context.Context, key string) (record.Entry, error) {
	q := GetQuerier(ctx, r.db)

	entry := record.Entry{Key: key}
	err := q.QueryRow(ctx, `SELECT value, version FROM kv_records WHERE key = $1`, key).
		Scan(&entry.Value, &entry.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return record.Entry{}, record.ErrNotFound
		}
		return record.Entry{}, fmt.Errorf("failed to get record %s: %w", key, err)
	}

	return entry, nil
}

// ScanPrefix implements record.Store.
func (r *RecordStore) ScanPrefix(ctx context.Context, prefix string) ([]record.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT key, value, version
		FROM kv_records
		WHERE key LIKE $1 ESCAPE '\'
		ORDER BY key ASC
	`

	rows, err := q.Query(ctx, query, escapeLike(prefix)+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to scan prefix %s: %w", prefix, err)
	}
	defer rows.Close()

	var entries []record.Entry
	for rows.Next() {
		var entry record.Entry
		if err := rows.Scan(&entry.Key, &entry.Value, &entry.Version); err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating record rows: %w", err)
	}

	return entries, nil
}

// Set implements record.Store.
func (r *RecordStore) Set(ctx context.Context, key string, value []byte) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO kv_records (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, version = kv_records.version + 1, updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set record %s: %w", key, err)
	}
	return nil
}

// Create implements record.Store.
func (r *RecordStore) Create(ctx context.Context, key string, value []byte) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `INSERT INTO kv_records (key, value) VALUES ($1, $2) ON CONFLICT (key) DO NOTHING`, key, value)
	if err != nil {
		return fmt.Errorf("failed to create record %s: %w", key, err)
	}
	if tag.RowsAffected() == 0 {
		return record.ErrKeyExists
	}
	return nil
}

// CompareAndSwap implements record.Store.
func (r *RecordStore) CompareAndSwap(ctx context.Context, key string, version int64, value []byte) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE kv_records
		SET value = $2, version = version + 1, updated_at = NOW()
		WHERE key = $1 AND version = $3
	`

	tag, err := q.Exec(ctx, query, key, value, version)
	if err != nil {
		return fmt.Errorf("failed to update record %s: %w", key, err)
	}
	if tag.RowsAffected() == 0 {
		return record.ErrVersionConflict
	}
	return nil
}

// Delete implements record.Store.
func (r *RecordStore) Delete(ctx context.Context, key string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM kv_records WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete record %s: %w", key, err)
	}
	return nil
}

// Atomically implements record.Store.
func (r *RecordStore) Atomically(ctx context.Context, fn func(ctx context.Context) error) error {
	return WithTransaction(ctx, r.db, fn)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
