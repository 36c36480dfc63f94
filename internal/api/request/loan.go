package request

import (
	"math"
	"strconv"
	"strings"
)

// LoanQuery holds the calculator inputs.
type LoanQuery struct {
	Principal         float64
	AnnualRatePercent float64
	TermYears         float64
}

// ParseLoanQuery converts raw query parameters into calculator inputs.
// Like the calculator form it backs, unparsable, negative or non-finite values
// are clamped to 0 rather than rejected; the calculator then returns its zero result.
func ParseLoanQuery(principalParam, rateParam, yearsParam string) LoanQuery {
	return LoanQuery{
		Principal:         clampNonNegative(principalParam),
		AnnualRatePercent: clampNonNegative(rateParam),
		TermYears:         clampNonNegative(yearsParam),
	}
}

func clampNonNegative(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
