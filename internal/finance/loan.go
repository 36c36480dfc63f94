// Package finance holds the pure calculations behind the dashboard: the EMI
// loan calculator, its amortization schedule and the transaction summary.
package finance

import (
	"math"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/model"
)

// ZeroRateMode selects how a 0% annual rate is treated.
type ZeroRateMode string

const (
	// ZeroRateDegenerate treats a 0% rate like any other non-positive input: zero result.
	ZeroRateDegenerate ZeroRateMode = "degenerate"
	// ZeroRateStraightLine spreads the principal evenly over the term with no interest.
	ZeroRateStraightLine ZeroRateMode = "straight-line"
)

// MaxTermYears is the longest term the calculator accepts. Longer terms yield
// the zero result, which also bounds the size of a schedule.
const MaxTermYears = 100

// LoanCalculator computes equated monthly installments.
// The zero value uses ZeroRateDegenerate, so a 0% rate yields the zero result
// rather than the straight-line split; set ZeroRateStraightLine for that.
type LoanCalculator struct {
	ZeroRate ZeroRateMode
}

// CalculateLoan runs the default calculator.
func CalculateLoan(principal, annualRatePercent, termYears float64) model.LoanResult {
	return LoanCalculator{}.Calculate(principal, annualRatePercent, termYears)
}

// Calculate returns the monthly payment, total interest and total payment of a
// fixed-rate loan. Non-positive or non-finite inputs, terms above MaxTermYears
// and results that overflow float64 yield the zero result; they are never
// reported as errors.
func (c LoanCalculator) Calculate(principal, annualRatePercent, termYears float64) model.LoanResult {
	if !c.accepts(principal, annualRatePercent, termYears) {
		return model.LoanResult{}
	}

	months := termYears * 12

	if annualRatePercent == 0 {
		return model.LoanResult{
			MonthlyPayment: principal / months,
			TotalInterest:  0,
			TotalPayment:   principal,
		}
	}

	// P*r / (1 - (1+r)^-n), with the denominator evaluated through
	// Expm1/Log1p so it neither overflows for high rates or long terms
	// (it tends to 1, the payment to P*r) nor cancels to 0 for tiny rates.
	r := annualRatePercent / 100 / 12
	monthly := principal * r / -math.Expm1(-months*math.Log1p(r))
	total := monthly * months

	result := model.LoanResult{
		MonthlyPayment: monthly,
		TotalInterest:  total - principal,
		TotalPayment:   total,
	}
	if !isFinite(result.MonthlyPayment) || !isFinite(result.TotalInterest) || !isFinite(result.TotalPayment) {
		return model.LoanResult{}
	}
	return result
}

// Schedule breaks the loan into monthly rows. A fractional term gets a final
// partial row; the last row always settles the remaining balance to zero.
func (c LoanCalculator) Schedule(principal, annualRatePercent, termYears float64) []model.AmortizationRow {
	result := c.Calculate(principal, annualRatePercent, termYears)
	if result.MonthlyPayment == 0 {
		return []model.AmortizationRow{}
	}

	r := annualRatePercent / 100 / 12
	count := int(math.Ceil(termYears*12 - 1e-9))
	rows := make([]model.AmortizationRow, 0, count)
	balance := principal

	for month := 1; month <= count; month++ {
		interest := balance * r
		payment := result.MonthlyPayment
		principalPart := payment - interest

		if month == count || principalPart >= balance {
			principalPart = balance
			payment = balance + interest
		}
		balance -= principalPart
		if math.Abs(balance) < 1e-6 {
			balance = 0
		}

		rows = append(rows, model.AmortizationRow{
			Month:            month,
			Payment:          payment,
			Principal:        principalPart,
			Interest:         interest,
			RemainingBalance: balance,
		})
		if balance == 0 {
			break
		}
	}
	return rows
}

func (c LoanCalculator) accepts(principal, annualRatePercent, termYears float64) bool {
	for _, v := range []float64{principal, annualRatePercent, termYears} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return false
		}
	}
	if principal == 0 || termYears == 0 || termYears > MaxTermYears {
		return false
	}
	if annualRatePercent == 0 {
		return c.ZeroRate == ZeroRateStraightLine
	}
	return true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
