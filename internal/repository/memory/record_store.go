package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/cmlabs-hris/hrms-engine/internal/domain/record"
)

type txKey struct{}

// RecordStore is an in-process record.Store. Writes inside Atomically are
// staged and validated against the committed state when fn returns.
type RecordStore struct {
	mu      sync.RWMutex
	entries map[string]record.Entry
}

func NewRecordStore() *RecordStore {
	return &RecordStore{entries: make(map[string]record.Entry)}
}

type stagedWrite struct {
	entry   record.Entry
	deleted bool
	// check validates the committed state this write was based on.
	check func(committed record.Entry, exists bool) error
}

type unit struct {
	mu     sync.Mutex
	writes map[string]*stagedWrite
}

func fromContext(ctx context.Context) *unit {
	u, _ := ctx.Value(txKey{}).(*unit)
	return u
}

// Get implements record.Store.
func (s *RecordStore) Get(ctx context.Context, key string) (record.Entry, error) {
	if err := ctx.Err(); err != nil {
		return record.Entry{}, err
	}

	entry, ok := s.lookup(fromContext(ctx), key)
	if !ok {
		return record.Entry{}, record.ErrNotFound
	}
	return entry, nil
}

// ScanPrefix implements record.Store.
func (s *RecordStore) ScanPrefix(ctx context.Context, prefix string) ([]record.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	merged := make(map[string]record.Entry)
	for key, entry := range s.entries {
		if strings.HasPrefix(key, prefix) {
			merged[key] = entry
		}
	}
	s.mu.RUnlock()

	if u := fromContext(ctx); u != nil {
		u.mu.Lock()
		for key, w := range u.writes {
			if !strings.HasPrefix(key, prefix) {
				continue
			}
			if w.deleted {
				delete(merged, key)
				continue
			}
			merged[key] = w.entry
		}
		u.mu.Unlock()
	}

	entries := make([]record.Entry, 0, len(merged))
	for _, entry := range merged {
		entries = append(entries, clone(entry))
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

// Set implements record.Store.
func (s *RecordStore) Set(ctx context.Context, key string, value []byte) error {
	return s.write(ctx, key, func(current record.Entry, exists bool) (record.Entry, error) {
		return record.Entry{Key: key, Value: value, Version: current.Version + 1}, nil
	}, nil)
}

// Create implements record.Store.
func (s *RecordStore) Create(ctx context.Context, key string, value []byte) error {
	return s.write(ctx, key, func(_ record.Entry, exists bool) (record.Entry, error) {
		if exists {
			return record.Entry{}, record.ErrKeyExists
		}
		return record.Entry{Key: key, Value: value, Version: 1}, nil
	}, func(_ record.Entry, exists bool) error {
		if exists {
			return record.ErrKeyExists
		}
		return nil
	})
}

// CompareAndSwap implements record.Store.
func (s *RecordStore) CompareAndSwap(ctx context.Context, key string, version int64, value []byte) error {
	var based int64
	return s.write(ctx, key, func(current record.Entry, exists bool) (record.Entry, error) {
		if !exists || current.Version != version {
			return record.Entry{}, record.ErrVersionConflict
		}
		based = current.Version
		return record.Entry{Key: key, Value: value, Version: version + 1}, nil
	}, func(committed record.Entry, exists bool) error {
		if !exists || committed.Version != based {
			return record.ErrVersionConflict
		}
		return nil
	})
}

// Delete implements record.Store.
func (s *RecordStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if u := fromContext(ctx); u != nil {
		u.mu.Lock()
		defer u.mu.Unlock()
		w, ok := u.writes[key]
		if !ok {
			w = &stagedWrite{}
			u.writes[key] = w
		}
		w.entry = record.Entry{Key: key}
		w.deleted = true
		return nil
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// Atomically implements record.Store.
func (s *RecordStore) Atomically(ctx context.Context, fn func(ctx context.Context) error) error {
	if fromContext(ctx) != nil {
		return fn(ctx)
	}

	u := &unit{writes: make(map[string]*stagedWrite)}
	if err := fn(context.WithValue(ctx, txKey{}, u)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, w := range u.writes {
		if w.check == nil {
			continue
		}
		committed, exists := s.entries[key]
		if err := w.check(committed, exists); err != nil {
			return err
		}
	}

	for key, w := range u.writes {
		if w.deleted {
			delete(s.entries, key)
			continue
		}
		// Blind writes bump whatever version is committed by now.
		entry := w.entry
		if w.check == nil {
			entry.Version = s.entries[key].Version + 1
		}
		s.entries[key] = entry
	}
	return nil
}

// write applies mutate to the current view of key. Inside a unit the result
// is staged and check is kept for commit time; the first staged operation on
// a key owns the check because it is the one based on committed state.
func (s *RecordStore) write(
	ctx context.Context,
	key string,
	mutate func(current record.Entry, exists bool) (record.Entry, error),
	check func(committed record.Entry, exists bool) error,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if u := fromContext(ctx); u != nil {
		u.mu.Lock()
		defer u.mu.Unlock()
		current, exists := s.lookupLocked(u, key)
		next, err := mutate(current, exists)
		if err != nil {
			return err
		}
		next.Value = append([]byte(nil), next.Value...)

		if w, ok := u.writes[key]; ok {
			w.entry = next
			w.deleted = false
			return nil
		}
		u.writes[key] = &stagedWrite{entry: next, check: check}
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.entries[key]
	next, err := mutate(current, exists)
	if err != nil {
		return err
	}
	next.Value = append([]byte(nil), next.Value...)
	s.entries[key] = next
	return nil
}

func (s *RecordStore) lookup(u *unit, key string) (record.Entry, bool) {
	if u != nil {
		u.mu.Lock()
		defer u.mu.Unlock()
	}
	return s.lookupLocked(u, key)
}

// lookupLocked expects u.mu to be held when u is non-nil.
func (s *RecordStore) lookupLocked(u *unit, key string) (record.Entry, bool) {
	if u != nil {
		if w, ok := u.writes[key]; ok {
			if w.deleted {
				return record.Entry{}, false
			}
			return clone(w.entry), true
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[key]
	if !ok {
		return record.Entry{}, false
	}
	return clone(entry), true
}

func clone(entry record.Entry) record.Entry {
	entry.Value = append([]byte(nil), entry.Value...)
	return entry
}
