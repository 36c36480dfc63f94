package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/model"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/money"
)

// TransactionService handles transaction business logic on top of the
// per-owner stores held by a StoreRegistry.
type TransactionService struct {
	registry *StoreRegistry
}

// NewTransactionService creates a new TransactionService with the provided registry.
func NewTransactionService(registry *StoreRegistry) *TransactionService {
	return &TransactionService{
		registry: registry,
	}
}

// GetTransactions returns the owner's transactions, newest date first.
func (s *TransactionService) GetTransactions(ctx context.Context, ownerID string) ([]model.TransactionResponse, error) {
	store, err := s.registry.ForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	items := store.List()
	out := make([]model.TransactionResponse, 0, len(items))
	for _, tx := range items {
		out = append(out, toResponse(tx))
	}
	return out, nil
}

// GetTransaction returns a single transaction of the owner.
// Returns apperrors.ErrTransactionNotFound when the id is unknown.
func (s *TransactionService) GetTransaction(ctx context.Context, ownerID, id string) (model.TransactionResponse, error) {
	store, err := s.registry.ForOwner(ctx, ownerID)
	if err != nil {
		return model.TransactionResponse{}, err
	}

	tx, ok := store.Get(id)
	if !ok {
		return model.TransactionResponse{}, fmt.Errorf("%w: %s", apperrors.ErrTransactionNotFound, id)
	}
	return toResponse(tx), nil
}

// CreateTransaction adds a transaction to the owner's collection.
func (s *TransactionService) CreateTransaction(ctx context.Context, ownerID string, req request.TransactionRequest) (model.TransactionResponse, error) {
	var tx model.Transaction
	err := s.mutate(ctx, ownerID, func(store *TransactionStore) error {
		var err error
		tx, err = store.Add(ctx, req)
		return err
	})
	if err != nil {
		return model.TransactionResponse{}, err
	}
	return toResponse(tx), nil
}

// UpdateTransaction replaces a transaction of the owner.
// updated is false when the id is unknown and the store ignores missing updates.
func (s *TransactionService) UpdateTransaction(ctx context.Context, ownerID, id string, req request.TransactionRequest) (model.TransactionResponse, bool, error) {
	var tx model.Transaction
	var updated bool
	err := s.mutate(ctx, ownerID, func(store *TransactionStore) error {
		var err error
		tx, updated, err = store.Update(ctx, id, req)
		return err
	})
	if err != nil || !updated {
		return model.TransactionResponse{}, updated, err
	}
	return toResponse(tx), true, nil
}

// DeleteTransaction removes a transaction of the owner. Deleting an unknown id
// is not an error; removed reports whether anything was deleted.
func (s *TransactionService) DeleteTransaction(ctx context.Context, ownerID, id string) (bool, error) {
	var removed bool
	err := s.mutate(ctx, ownerID, func(store *TransactionStore) error {
		var err error
		removed, err = store.Remove(ctx, id)
		return err
	})
	return removed, err
}

// GetSummary aggregates the owner's transactions.
func (s *TransactionService) GetSummary(ctx context.Context, ownerID string) (model.SummaryResponse, error) {
	store, err := s.registry.ForOwner(ctx, ownerID)
	if err != nil {
		return model.SummaryResponse{}, err
	}

	summary := store.Summary()
	return model.SummaryResponse{
		Summary: summary,
		Display: money.FormatAll(map[string]float64{
			"totalCredit":        summary.TotalCredit,
			"totalDebit":         summary.TotalDebit,
			"netBalance":         summary.NetBalance,
			"outstandingLoanEmi": summary.OutstandingLoanEMI,
			"otherPending":       summary.OtherPending,
		}),
	}, nil
}

// mutate runs fn on the owner's store, fetching the store again once if it
// was evicted while fn waited on it.
func (s *TransactionService) mutate(ctx context.Context, ownerID string, fn func(*TransactionStore) error) error {
	for attempt := 0; ; attempt++ {
		store, err := s.registry.ForOwner(ctx, ownerID)
		if err != nil {
			return err
		}
		err = fn(store)
		if errors.Is(err, apperrors.ErrStoreClosed) && attempt == 0 {
			continue
		}
		return err
	}
}

func toResponse(tx model.Transaction) model.TransactionResponse {
	return model.TransactionResponse{
		Transaction:   tx,
		AmountDisplay: money.FormatINR(tx.Amount),
	}
}
