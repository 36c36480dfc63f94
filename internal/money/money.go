// Package money renders amounts for display. Stored data never carries the
// currency symbol; it is applied here at render time only.
package money

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Symbol is the display currency symbol.
const Symbol = "₹"

// FormatINR renders an amount with two decimals and Indian digit grouping
// (last three digits, then pairs): 1234567.5 -> "₹12,34,567.50".
// Negative amounts keep the sign after the symbol. NaN and infinities are
// rendered as "₹NaN", "₹+Inf" and "₹-Inf".
func FormatINR(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Symbol + strconv.FormatFloat(amount, 'f', -1, 64)
	}

	fixed := decimal.NewFromFloat(amount).StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}
	if fixed == "0.00" {
		sign = ""
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	return Symbol + sign + groupIndian(intPart) + "." + fracPart
}

// FormatAll renders every named amount.
func FormatAll(amounts map[string]float64) map[string]string {
	out := make(map[string]string, len(amounts))
	for name, v := range amounts {
		out[name] = FormatINR(v)
	}
	return out
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(append(groups, tail), ",")
}
