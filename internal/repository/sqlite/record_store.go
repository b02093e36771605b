package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/record"
	"github.com/cmlabs-hris/hrms-engine/internal/pkg/database"
)

const schema = `
	CREATE TABLE IF NOT EXISTS kv_records (
		key        TEXT PRIMARY KEY,
		value      BLOB NOT NULL,
		version    INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)
`

type txKey struct{}

type RecordStore struct {
	db *sql.DB
}

func NewRecordStore(db *sql.DB) *RecordStore {
	return &RecordStore{db: db}
}

// Migrate creates the backing table if it does not exist yet.
func (r *RecordStore) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create kv_records table: %w", err)
	}
	return nil
}

func (r *RecordStore) querier(ctx context.Context) database.SQLQuerier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return r.db
}

// Get implements record.Store.
func (r *RecordStore) Get(ctx context.Context, key string) (record.Entry, error) {
	entry := record.Entry{Key: key}
	err := r.querier(ctx).QueryRowContext(ctx, `SELECT value, version FROM kv_records WHERE key = ?`, key).
		Scan(&entry.Value, &entry.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return record.Entry{}, record.ErrNotFound
		}
		return record.Entry{}, fmt.Errorf("failed to get record %s: %w", key, err)
	}
	return entry, nil
}

// ScanPrefix implements record.Store.
func (r *RecordStore) ScanPrefix(ctx context.Context, prefix string) ([]record.Entry, error) {
	query := `
		SELECT key, value, version
		FROM kv_records
		WHERE key LIKE ? ESCAPE '\'
		ORDER BY key ASC
	`

	rows, err := r.querier(ctx).QueryContext(ctx, query, escapeLike(prefix)+"%")
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
		// LIKE is case-insensitive for ASCII in sqlite.
		if !strings.HasPrefix(entry.Key, prefix) {
			continue
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
	query := `
		INSERT INTO kv_records (key, value)
		VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE
		SET value = excluded.value, version = kv_records.version + 1, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := r.querier(ctx).ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set record %s: %w", key, err)
	}
	return nil
}

// Create implements record.Store.
func (r *RecordStore) Create(ctx context.Context, key string, value []byte) error {
	res, err := r.querier(ctx).ExecContext(ctx, `INSERT INTO kv_records (key, value) VALUES (?, ?) ON CONFLICT (key) DO NOTHING`, key, value)
	if err != nil {
		return fmt.Errorf("failed to create record %s: %w", key, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return record.ErrKeyExists
	}
	return nil
}

// CompareAndSwap implements record.Store.
func (r *RecordStore) CompareAndSwap(ctx context.Context, key string, version int64, value []byte) error {
	query := `
		UPDATE kv_records
		SET value = ?, version = version + 1, updated_at = CURRENT_TIMESTAMP
		WHERE key = ? AND version = ?
	`
	res, err := r.querier(ctx).ExecContext(ctx, query, value, key, version)
	if err != nil {
		return fmt.Errorf("failed to update record %s: %w", key, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return record.ErrVersionConflict
	}
	return nil
}

// Delete implements record.Store.
func (r *RecordStore) Delete(ctx context.Context, key string) error {
	if _, err := r.querier(ctx).ExecContext(ctx, `DELETE FROM kv_records WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete record %s: %w", key, err)
	}
	return nil
}

// Atomically implements record.Store.
func (r *RecordStore) Atomically(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				slog.Error("rollback error during panic recovery", "error", rbErr)
			}
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
