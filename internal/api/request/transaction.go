package request

// TransactionRequest is the body of a transaction create or update.
// Amount is a pointer so that a missing amount can be told apart from 0.
type TransactionRequest struct {
	ID           string   `json:"id,omitempty"`
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Amount       *float64 `json:"amount"`
	Date         string   `json:"date"`
	Status       string   `json:"status"`
	Notes        string   `json:"notes"`
	InterestRate *float64 `json:"interestRate"`
	LoanTerm     *float64 `json:"loanTerm"`
}
