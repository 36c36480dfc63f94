package model

// TransactionType classifies a transaction.
type TransactionType string

const (
	TypeCredit      TransactionType = "Credit"
	TypeDebit       TransactionType = "Debit"
	TypeEMI         TransactionType = "EMI"
	TypeLoan        TransactionType = "Loan"
	TypeInstallment TransactionType = "Installment"
)

// ValidTransactionTypes contains the allowed transaction type values.
var ValidTransactionTypes = map[TransactionType]bool{
	TypeCredit: true, TypeDebit: true, TypeEMI: true, TypeLoan: true, TypeInstallment: true,
}

// IsLoanLike reports whether the type carries interest rate and loan term details.
func (t TransactionType) IsLoanLike() bool {
	return t == TypeLoan || t == TypeEMI
}

// TransactionStatus records whether a transaction has been settled.
type TransactionStatus string

const (
	StatusPaid    TransactionStatus = "Paid"
	StatusPending TransactionStatus = "Pending"
)

// ValidTransactionStatuses contains the allowed status values.
var ValidTransactionStatuses = map[TransactionStatus]bool{
	StatusPaid: true, StatusPending: true,
}

// Transaction is a single financial record owned by one identity.
// Date is kept as an ISO "2006-01-02" string, which is also its sort key.
// InterestRate and LoanTerm are only set for Loan and EMI records.
type Transaction struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Type         TransactionType   `json:"type"`
	Amount       float64           `json:"amount"`
	Date         string            `json:"date"`
	Status       TransactionStatus `json:"status"`
	Notes        string            `json:"notes,omitempty"`
	InterestRate *float64          `json:"interestRate"`
	LoanTerm     *float64          `json:"loanTerm"`
	OwnerID      string            `json:"ownerId"`
}

// TransactionResponse is a transaction enriched with display strings for API responses.
type TransactionResponse struct {
	Transaction
	AmountDisplay string `json:"amountDisplay"`
}
