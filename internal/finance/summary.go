package finance

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/model"
)

// Summarize reduces transactions into dashboard totals. Amounts are
// accumulated as decimals so repeated additions do not drift. Records are not
// validated here; the store rejects malformed ones on insert.
func Summarize(transactions []model.Transaction) model.Summary {
	credit := decimal.Zero
	debit := decimal.Zero
	loanEMI := decimal.Zero
	otherPending := decimal.Zero

	for _, t := range transactions {
		if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
			continue
		}
		amount := decimal.NewFromFloat(t.Amount)

		switch t.Type {
		case model.TypeCredit:
			credit = credit.Add(amount)
		case model.TypeDebit:
			debit = debit.Add(amount)
		}

		if t.Status != model.StatusPending {
			continue
		}
		if t.Type.IsLoanLike() {
			loanEMI = loanEMI.Add(amount)
		} else {
			otherPending = otherPending.Add(amount)
		}
	}

	return model.Summary{
		TotalCredit:        toFloat(credit),
		TotalDebit:         toFloat(debit),
		NetBalance:         toFloat(credit.Sub(debit)),
		OutstandingLoanEMI: toFloat(loanEMI),
		OtherPending:       toFloat(otherPending),
	}
}

// toFloat converts d, saturating at ±math.MaxFloat64 instead of overflowing to
// an infinity that JSON cannot encode.
func toFloat(d decimal.Decimal) float64 {
	f := d.InexactFloat64()
	switch {
	case math.IsInf(f, 1):
		return math.MaxFloat64
	case math.IsInf(f, -1):
		return -math.MaxFloat64
	}
	return f
}
