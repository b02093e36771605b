package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/record"
	"github.com/cmlabs-hris/hrms-engine/internal/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *RecordStore {
	t.Helper()

	ctx := context.Background()
	db, err := database.NewSQLiteDB(ctx, filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		// go-sqlite3 needs cgo.
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := NewRecordStore(db)
	require.NoError(t, store.Migrate(ctx))
	return store
}

func TestRecordStore_CreateIsInsertIfAbsent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "attendance:e1:2024-03-05", []byte(`{"n":1}`)))
	assert.ErrorIs(t, store.Create(ctx, "attendance:e1:2024-03-05", []byte(`{"n":2}`)), record.ErrKeyExists)

	entry, err := store.Get(ctx, "attendance:e1:2024-03-05")
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":1}`, string(entry.Value))
	assert.Equal(t, int64(1), entry.Version)
}

func TestRecordStore_CompareAndSwap(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "payroll:e1:2024-03", []byte(`{"v":1}`)))
	require.NoError(t, store.CompareAndSwap(ctx, "payroll:e1:2024-03", 1, []byte(`{"v":2}`)))
	assert.ErrorIs(t, store.CompareAndSwap(ctx, "payroll:e1:2024-03", 1, []byte(`{"v":3}`)), record.ErrVersionConflict)
	assert.ErrorIs(t, store.CompareAndSwap(ctx, "payroll:missing", 1, []byte(`{}`)), record.ErrVersionConflict)

	entry, err := store.Get(ctx, "payroll:e1:2024-03")
	require.NoError(t, err)
	assert.Equal(t, int64(2), entry.Version)
}

func TestRecordStore_ScanPrefixIsCaseSensitive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "trace:E1:0000000000002", []byte(`{}`)))
	require.NoError(t, store.Set(ctx, "trace:e1:0000000000002", []byte(`{}`)))
	require.NoError(t, store.Set(ctx, "trace:e1:0000000000001", []byte(`{}`)))

	entries, err := store.ScanPrefix(ctx, "trace:e1:")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "trace:e1:0000000000001", entries[0].Key)
}

func TestRecordStore_AtomicallyRollsBack(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.Atomically(ctx, func(ctx context.Context) error {
		require.NoError(t, store.Set(ctx, "employee:e1", []byte(`{}`)))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = store.Get(ctx, "employee:e1")
	assert.ErrorIs(t, err, record.ErrNotFound)
}
