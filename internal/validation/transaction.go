package validation

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/finance"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/model"
)

// Upper bounds on numeric transaction fields. They keep every sum the summary
// computes well inside float64 range.
const (
	MaxAmount       = 1e15
	MaxInterestRate = 1000
	MaxLoanTerm     = finance.MaxTermYears
)

// ValidateTransaction validates a transaction create or update request.
//
// Required fields (rejected together with ErrRequiredTransactionFields):
//   - name: non-blank
//   - amount: present
//   - date: non-blank
//
// Constrained fields:
//   - id: a valid UUID if provided
//   - amount: finite, non-negative and at most MaxAmount
//   - date: YYYY-MM-DD
//   - type: Credit, Debit, EMI, Loan or Installment if provided
//   - status: Paid or Pending if provided
//   - interestRate: finite, non-negative and at most MaxInterestRate if provided
//   - loanTerm: finite, non-negative and at most MaxLoanTerm years if provided
func ValidateTransaction(req request.TransactionRequest) error {
	missing := make(map[string]string)
	if strings.TrimSpace(req.Name) == "" {
		missing["name"] = "name is required"
	}
	if req.Amount == nil {
		missing["amount"] = "amount is required"
	}
	if strings.TrimSpace(req.Date) == "" {
		missing["date"] = "date is required"
	}
	if len(missing) > 0 {
		return &Error{Err: apperrors.ErrRequiredTransactionFields, Fields: missing}
	}

	errors := make(map[string]string)

	if req.ID != "" {
		if err := ValidateUUID(req.ID); err != nil {
			errors["id"] = err.Error()
		}
	}

	if math.IsNaN(*req.Amount) || math.IsInf(*req.Amount, 0) {
		errors["amount"] = "amount must be a finite number"
	} else if *req.Amount < 0 {
		errors["amount"] = apperrors.ErrNegativeAmount.Error()
	} else if *req.Amount > MaxAmount {
		errors["amount"] = fmt.Sprintf("amount cannot exceed %.0f", float64(MaxAmount))
	}

	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = fmt.Sprintf("date must be YYYY-MM-DD: %s", req.Date)
	}

	if req.Type != "" && !model.ValidTransactionTypes[model.TransactionType(req.Type)] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if req.Status != "" && !model.ValidTransactionStatuses[model.TransactionStatus(req.Status)] {
		errors["status"] = fmt.Sprintf("invalid status: %s", req.Status)
	}

	limits := map[string]struct {
		value *float64
		max   float64
	}{
		"interestRate": {req.InterestRate, MaxInterestRate},
		"loanTerm":     {req.LoanTerm, MaxLoanTerm},
	}
	for field, l := range limits {
		if l.value == nil {
			continue
		}
		v := *l.value
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			errors[field] = fmt.Sprintf("%s must be a non-negative number", field)
		} else if v > l.max {
			errors[field] = fmt.Sprintf("%s cannot exceed %g", field, l.max)
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
