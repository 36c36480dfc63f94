package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/config"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/repository"
)

// StoreRegistry keeps one loaded TransactionStore per owner, so an owner's
// collection is read from persistence once and then served from memory.
// It also tracks the open sessions of each owner; a store is evicted when the
// last of them is released.
//
// Evicting closes the store while r.mu is held. A mutation already running on
// it completes and persists before the next ForOwner can reload the owner, and
// later mutations on the old store fail with apperrors.ErrStoreClosed.
type StoreRegistry struct {
	mu            sync.Mutex
	kv            repository.KeyValueStore
	updateMissing config.UpdateMissingPolicy
	stores        map[string]*TransactionStore
	sessions      map[string]map[string]struct{}
}

// NewStoreRegistry creates a registry whose stores persist through kv.
func NewStoreRegistry(kv repository.KeyValueStore, updateMissing config.UpdateMissingPolicy) *StoreRegistry {
	return &StoreRegistry{
		kv:            kv,
		updateMissing: updateMissing,
		stores:        make(map[string]*TransactionStore),
		sessions:      make(map[string]map[string]struct{}),
	}
}

// ForOwner returns the owner's store, loading it on first use.
func (r *StoreRegistry) ForOwner(ctx context.Context, ownerID string) (*TransactionStore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx, ownerID)
}

// Attach loads the owner's store and records sessionID as one of its sessions.
func (r *StoreRegistry) Attach(ctx context.Context, ownerID, sessionID string) (*TransactionStore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	store, err := r.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if r.sessions[ownerID] == nil {
		r.sessions[ownerID] = make(map[string]struct{})
	}
	r.sessions[ownerID][sessionID] = struct{}{}
	return store, nil
}

// Release forgets sessionID and evicts the owner's store once no attached
// session remains. It reports whether the store was evicted. Releasing an
// unknown session still evicts an owner with no attached sessions, which covers
// sessions opened before a restart.
func (r *StoreRegistry) Release(ownerID, sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if open := r.sessions[ownerID]; open != nil {
		delete(open, sessionID)
		if len(open) > 0 {
			return false
		}
	}
	return r.evict(ownerID)
}

// Evict drops the owner's in-memory store. The persisted collection is untouched.
func (r *StoreRegistry) Evict(ownerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evict(ownerID)
}

// Erase drops the owner's in-memory store and deletes the persisted collection.
func (r *StoreRegistry) Erase(ctx context.Context, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.evict(ownerID)
	if err := r.kv.Delete(ctx, ScopeKey(ownerID)); err != nil {
		return fmt.Errorf("failed to erase transactions of %s: %w", ownerID, err)
	}
	return nil
}

// Loaded reports how many owner stores are currently held in memory.
func (r *StoreRegistry) Loaded() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}

// Sessions reports how many sessions are attached to the owner.
func (r *StoreRegistry) Sessions(ownerID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions[ownerID])
}

// load returns the cached store or loads it. Callers hold r.mu.
func (r *StoreRegistry) load(ctx context.Context, ownerID string) (*TransactionStore, error) {
	if store, ok := r.stores[ownerID]; ok {
		return store, nil
	}

	store := NewTransactionStore(r.kv, r.updateMissing)
	if err := store.Load(ctx, ownerID); err != nil {
		return nil, err
	}
	r.stores[ownerID] = store
	return store, nil
}

// evict closes and drops the owner's store. Callers hold r.mu.
func (r *StoreRegistry) evict(ownerID string) bool {
	delete(r.sessions, ownerID)

	store, ok := r.stores[ownerID]
	if !ok {
		return false
	}
	delete(r.stores, ownerID)
	store.close()
	return true
}
