package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/repository"
)

// ErrInjected is returned by FailingKV while a failure is armed.
var ErrInjected = errors.New("injected failure")

// FailingKV wraps a KeyValueStore and fails writes on demand, for testing
// rollback paths.
//
// Example usage:
//
//	kv := testutil.NewFailingKV(repository.NewKVRepository(db))
//	kv.FailWrites(true)
//	_, err := store.Add(ctx, req) // err wraps testutil.ErrInjected
type FailingKV struct {
	repository.KeyValueStore

	mu         sync.Mutex
	failWrites bool
}

// NewFailingKV wraps next; writes succeed until FailWrites(true) is called.
func NewFailingKV(next repository.KeyValueStore) *FailingKV {
	return &FailingKV{KeyValueStore: next}
}

// FailWrites arms or disarms the write failure.
func (f *FailingKV) FailWrites(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWrites = fail
}

func (f *FailingKV) failing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failWrites
}

// Set fails with ErrInjected while armed.
func (f *FailingKV) Set(ctx context.Context, key string, value []byte) error {
	if f.failing() {
		return ErrInjected
	}
	return f.KeyValueStore.Set(ctx, key, value)
}

// Delete fails with ErrInjected while armed.
func (f *FailingKV) Delete(ctx context.Context, key string) error {
	if f.failing() {
		return ErrInjected
	}
	return f.KeyValueStore.Delete(ctx, key)
}
