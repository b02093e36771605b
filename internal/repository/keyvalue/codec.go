// Package keyvalue holds the typed repositories. Every entity is stored as a
// JSON document under the key layout defined in domain/record, so the same
// repositories run on any record.Store driver.
package keyvalue

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/record"
	"github.com/goccy/go-json"
)

func encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	return data, nil
}

func decode[T any](entry record.Entry) (T, error) {
	var v T
	if err := json.Unmarshal(entry.Value, &v); err != nil {
		return v, fmt.Errorf("failed to decode record %s: %w", entry.Key, err)
	}
	return v, nil
}

// scan decodes every entry under prefix in key order. withVersion, when set,
// copies the stored version onto the decoded value.
func scan[T any](ctx context.Context, store record.Store, prefix string, withVersion func(*T, int64)) ([]T, error) {
	entries, err := store.ScanPrefix(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", prefix, err)
	}

	items := make([]T, 0, len(entries))
	for _, entry := range entries {
		v, err := decode[T](entry)
		if err != nil {
			return nil, err
		}
		if withVersion != nil {
			withVersion(&v, entry.Version)
		}
		items = append(items, v)
	}
	return items, nil
}

// swap replaces the document at key if version is still current and returns
// the version the store now holds.
func swap(ctx context.Context, store record.Store, key string, version int64, v any) (int64, error) {
	data, err := encode(v)
	if err != nil {
		return 0, err
	}
	if err := store.CompareAndSwap(ctx, key, version, data); err != nil {
		return 0, fmt.Errorf("failed to update %s: %w", key, err)
	}
	return version + 1, nil
}
