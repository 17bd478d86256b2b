package storage

import (
	"context"
	"sync"
)

// Backend is a persistent string-keyed, string-valued namespace
type Backend interface {
	// GetItem returns the value under key; ok is false when nothing is stored
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// MemoryBackend keeps items in a map. Reads and writes can be made to fail
// to simulate a disabled or full store.
type MemoryBackend struct {
	mu         sync.Mutex
	items      map[string]string
	failReads  bool
	failWrites bool
}

// NewMemoryBackend creates an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{items: make(map[string]string)}
}

func (b *MemoryBackend) GetItem(_ context.Context, key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failReads {
		return "", false, ErrStoreUnavailable
	}
	v, ok := b.items[key]
	return v, ok, nil
}

func (b *MemoryBackend) SetItem(_ context.Context, key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failWrites {
		return ErrStoreUnavailable
	}
	b.items[key] = value
	return nil
}

func (b *MemoryBackend) RemoveItem(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failWrites {
		return ErrStoreUnavailable
	}
	delete(b.items, key)
	return nil
}

// FailReads makes every subsequent read fail
func (b *MemoryBackend) FailReads(fail bool) {
	b.mu.Lock()
	b.failReads = fail
	b.mu.Unlock()
}

// FailWrites makes every subsequent write fail
func (b *MemoryBackend) FailWrites(fail bool) {
	b.mu.Lock()
	b.failWrites = fail
	b.mu.Unlock()
}

// UnavailableBackend fails every operation. It stands in for a store that
// could not be opened, leaving callers with in-memory state only.
type UnavailableBackend struct {
	Cause error
}

func (b UnavailableBackend) err() error {
	if b.Cause != nil {
		return &StoreUnavailableError{Op: "open", Err: b.Cause}
	}
	return ErrStoreUnavailable
}

func (b UnavailableBackend) GetItem(context.Context, string) (string, bool, error) {
	return "", false, b.err()
}

func (b UnavailableBackend) SetItem(context.Context, string, string) error { return b.err() }

func (b UnavailableBackend) RemoveItem(context.Context, string) error { return b.err() }
