package testutil

import (
	"testing"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/model"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/service"
)

// TransactionBuilder provides a fluent interface for creating test transactions.
//
// Example usage:
//
//	// Simple creation with defaults
//	tx := testutil.NewTransaction().Build(t, store)
//
//	// Customized transaction
//	tx := testutil.NewTransaction().
//	    WithType(model.TypeLoan).
//	    WithAmount(250000).
//	    WithLoanDetails(8.5, 5).
//	    Pending().
//	    Build(t, store)
type TransactionBuilder struct {
	ID           string
	Name         string
	Type         model.TransactionType
	Amount       float64
	Date         string
	Status       model.TransactionStatus
	Notes        string
	InterestRate *float64
	LoanTerm     *float64
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
func NewTransaction() *TransactionBuilder {
	return &TransactionBuilder{
		Name:   MakeTransactionName("Groceries"),
		Type:   model.TypeDebit,
		Amount: 100,
		Date:   "2024-01-15",
		Status: model.StatusPaid,
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *TransactionBuilder) WithName(name string) *TransactionBuilder {
	b.Name = name
	return b
}

// WithType sets the transaction type.
func (b *TransactionBuilder) WithType(t model.TransactionType) *TransactionBuilder {
	b.Type = t
	return b
}

// WithAmount sets the amount.
func (b *TransactionBuilder) WithAmount(amount float64) *TransactionBuilder {
	b.Amount = amount
	return b
}

// WithDate sets the date (YYYY-MM-DD).
func (b *TransactionBuilder) WithDate(date string) *TransactionBuilder {
	b.Date = date
	return b
}

// WithNotes sets the notes.
func (b *TransactionBuilder) WithNotes(notes string) *TransactionBuilder {
	b.Notes = notes
	return b
}

// WithLoanDetails sets interest rate and loan term.
func (b *TransactionBuilder) WithLoanDetails(rate, term float64) *TransactionBuilder {
	b.InterestRate = &rate
	b.LoanTerm = &term
	return b
}

// Pending marks the transaction as pending.
func (b *TransactionBuilder) Pending() *TransactionBuilder {
	b.Status = model.StatusPending
	return b
}

// Request returns the builder's values as a create/update request.
func (b *TransactionBuilder) Request() request.TransactionRequest {
	amount := b.Amount
	return request.TransactionRequest{
		ID:           b.ID,
		Name:         b.Name,
		Type:         string(b.Type),
		Amount:       &amount,
		Date:         b.Date,
		Status:       string(b.Status),
		Notes:        b.Notes,
		InterestRate: b.InterestRate,
		LoanTerm:     b.LoanTerm,
	}
}

// Build adds the transaction to store and returns the stored record.
func (b *TransactionBuilder) Build(t *testing.T, store *service.TransactionStore) model.Transaction {
	t.Helper()

	tx, err := store.Add(t.Context(), b.Request())
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}
	return tx
}

// LoginAs opens a session for email and returns it.
//
// Example usage:
//
//	sess := testutil.LoginAs(t, svcs.Sessions, testutil.MakeEmail("bob"))
//	// sess.Token is ready for an Authorization header
func LoginAs(t *testing.T, sessions *service.SessionService, email string) model.SessionResponse {
	t.Helper()

	resp, err := sessions.Login(t.Context(), request.LoginRequest{Email: email, Password: "secret"})
	if err != nil {
		t.Fatalf("Failed to log in as %s: %v", email, err)
	}
	return resp
}
