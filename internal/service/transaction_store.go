package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/config"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/finance"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/model"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/validation"
)

const (
	transactionKeyPrefix = "transactions_"
	guestOwner           = "guest"
)

// ScopeKey returns the storage key of an owner's transaction collection.
// An empty owner maps to the shared "guest" scope.
func ScopeKey(ownerID string) string {
	if ownerID == "" {
		ownerID = guestOwner
	}
	return transactionKeyPrefix + ownerID
}

// TransactionStore is the in-memory, date-ordered transaction collection of a
// single owner. Every mutation writes the whole collection back to the
// key-value store; if that write fails the mutation is rolled back.
type TransactionStore struct {
	mu            sync.Mutex
	kv            repository.KeyValueStore
	updateMissing config.UpdateMissingPolicy
	newID         func() string

	ownerID string
	items   []model.Transaction
	closed  bool
}

// NewTransactionStore creates an empty store. Call Load to bind it to an owner.
func NewTransactionStore(kv repository.KeyValueStore, updateMissing config.UpdateMissingPolicy) *TransactionStore {
	return &TransactionStore{
		kv:            kv,
		updateMissing: updateMissing,
		newID:         newTransactionID,
		items:         []model.Transaction{},
	}
}

// newTransactionID returns a time-ordered UUIDv7, falling back to a random v4.
func newTransactionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Load replaces the in-memory collection with the owner's persisted one.
// A missing collection loads as empty.
func (s *TransactionStore) Load(ctx context.Context, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.kv.Get(ctx, ScopeKey(ownerID))
	if errors.Is(err, apperrors.ErrKeyNotFound) {
		s.ownerID = ownerID
		s.items = []model.Transaction{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	items := []model.Transaction{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("%w: transactions for %s: %v", apperrors.ErrDataInconsistency, ownerID, err)
	}
	sortByDateDesc(items)

	s.ownerID = ownerID
	s.items = items
	return nil
}

// OwnerID returns the owner the store is scoped to.
func (s *TransactionStore) OwnerID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ownerID
}

// List returns a copy of the collection, newest date first.
func (s *TransactionStore) List() []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Transaction, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the transaction with the given id.
func (s *TransactionStore) Get(id string) (model.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	return model.Transaction{}, false
}

// Summary aggregates the current collection.
func (s *TransactionStore) Summary() model.Summary {
	return finance.Summarize(s.List())
}

// Add validates req, assigns an id when none is given and inserts the record.
// A validation failure leaves the collection untouched.
func (s *TransactionStore) Add(ctx context.Context, req request.TransactionRequest) (model.Transaction, error) {
	if err := validation.ValidateTransaction(req); err != nil {
		return model.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return model.Transaction{}, apperrors.ErrStoreClosed
	}

	tx := normalize(req)
	if tx.ID == "" {
		tx.ID = s.newID()
	}
	if s.indexOf(tx.ID) >= 0 {
		return model.Transaction{}, fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicateEntry, tx.ID)
	}
	tx.OwnerID = s.ownerID

	next := make([]model.Transaction, len(s.items), len(s.items)+1)
	copy(next, s.items)
	next = append(next, tx)
	sortByDateDesc(next)

	if err := s.commit(ctx, next); err != nil {
		return model.Transaction{}, err
	}
	return tx, nil
}

// Update replaces the transaction with the given id, keeping its id and owner.
// When no transaction matches, the outcome follows the store's UpdateMissingPolicy:
// ok=false with a nil error for "ignore", ErrTransactionNotFound for "error".
func (s *TransactionStore) Update(ctx context.Context, id string, req request.TransactionRequest) (model.Transaction, bool, error) {
	if err := validation.ValidateTransaction(req); err != nil {
		return model.Transaction{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return model.Transaction{}, false, apperrors.ErrStoreClosed
	}

	i := s.indexOf(id)
	if i < 0 {
		if s.updateMissing == config.RejectMissingUpdate {
			return model.Transaction{}, false, fmt.Errorf("%w: %s", apperrors.ErrTransactionNotFound, id)
		}
		return model.Transaction{}, false, nil
	}

	tx := normalize(req)
	tx.ID = id
	tx.OwnerID = s.items[i].OwnerID

	next := make([]model.Transaction, len(s.items))
	copy(next, s.items)
	next[i] = tx
	sortByDateDesc(next)

	if err := s.commit(ctx, next); err != nil {
		return model.Transaction{}, false, err
	}
	return tx, true, nil
}

// Remove deletes the transaction with the given id. Removing an unknown id is a
// no-op that reports removed=false and writes nothing.
func (s *TransactionStore) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, apperrors.ErrStoreClosed
	}

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}

	next := make([]model.Transaction, 0, len(s.items)-1)
	next = append(next, s.items[:i]...)
	next = append(next, s.items[i+1:]...)

	if err := s.commit(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// close waits for an in-flight mutation to finish, then makes every further
// mutation fail with ErrStoreClosed.
func (s *TransactionStore) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// commit persists next and, only on success, makes it the current collection.
// Callers hold s.mu.
func (s *TransactionStore) commit(ctx context.Context, next []model.Transaction) error {
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to encode transactions: %w", err)
	}
	if err := s.kv.Set(ctx, ScopeKey(s.ownerID), raw); err != nil {
		return fmt.Errorf("failed to persist transactions: %w", err)
	}
	s.items = next
	return nil
}

func (s *TransactionStore) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// normalize fills form defaults and drops loan details from non-loan records.
func normalize(req request.TransactionRequest) model.Transaction {
	tx := model.Transaction{
		ID:     req.ID,
		Name:   req.Name,
		Type:   model.TransactionType(req.Type),
		Amount: *req.Amount,
		Date:   req.Date,
		Status: model.TransactionStatus(req.Status),
		Notes:  req.Notes,
	}
	if tx.Type == "" {
		tx.Type = model.TypeDebit
	}
	if tx.Status == "" {
		tx.Status = model.StatusPaid
	}
	if tx.Type.IsLoanLike() {
		tx.InterestRate = positiveOrNil(req.InterestRate)
		tx.LoanTerm = positiveOrNil(req.LoanTerm)
	}
	return tx
}

func positiveOrNil(v *float64) *float64 {
	if v == nil || *v == 0 {
		return nil
	}
	out := *v
	return &out
}

// sortByDateDesc orders by ISO date, newest first; equal dates keep insertion order.
func sortByDateDesc(items []model.Transaction) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date > items[j].Date
	})
}
