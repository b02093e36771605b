package postgresql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordStore_CreateAndCompareAndSwap(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	store := setup.Store

	require.NoError(t, store.Create(ctx, "attendance:e1:2024-03-05", []byte(`{"status":"present"}`)))
	assert.ErrorIs(t, store.Create(ctx, "attendance:e1:2024-03-05", []byte(`{}`)), record.ErrKeyExists)

	entry, err := store.Get(ctx, "attendance:e1:2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, int64(1), entry.Version)
	assert.JSONEq(t, `{"status":"present"}`, string(entry.Value))

	require.NoError(t, store.CompareAndSwap(ctx, entry.Key, entry.Version, []byte(`{"status":"absent"}`)))
	assert.ErrorIs(t, store.CompareAndSwap(ctx, entry.Key, entry.Version, []byte(`{}`)), record.ErrVersionConflict)

	entry, err = store.Get(ctx, entry.Key)
	require.NoError(t, err)
	assert.Equal(t, int64(2), entry.Version)
}

func TestRecordStore_ScanPrefixEscapesWildcards(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	store := setup.Store

	require.NoError(t, store.Set(ctx, "payroll:e_1:2024-02", []byte(`{}`)))
	require.NoError(t, store.Set(ctx, "payroll:e_1:2024-01", []byte(`{}`)))
	require.NoError(t, store.Set(ctx, "payroll:ex1:2024-01", []byte(`{}`)))

	entries, err := store.ScanPrefix(ctx, "payroll:e_1:")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "payroll:e_1:2024-01", entries[0].Key)
	assert.Equal(t, "payroll:e_1:2024-02", entries[1].Key)
}

func TestRecordStore_AtomicallyRollsBack(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	store := setup.Store
	boom := errors.New("boom")

	err := store.Atomically(ctx, func(ctx context.Context) error {
		if err := store.Set(ctx, "employee:e1", []byte(`{}`)); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = store.Get(ctx, "employee:e1")
	assert.ErrorIs(t, err, record.ErrNotFound)
}
