package model

// Summary holds the aggregate totals derived from an owner's transactions.
type Summary struct {
	TotalCredit        float64 `json:"totalCredit"`
	TotalDebit         float64 `json:"totalDebit"`
	NetBalance         float64 `json:"netBalance"`
	OutstandingLoanEMI float64 `json:"outstandingLoanEmi"`
	OtherPending       float64 `json:"otherPending"`
}

// SummaryResponse pairs the raw totals with their rendered currency strings.
type SummaryResponse struct {
	Summary
	Display map[string]string `json:"display"`
}
