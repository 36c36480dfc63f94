package model

// LoanResult is the outcome of an EMI calculation. It is never persisted.
type LoanResult struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalInterest  float64 `json:"totalInterest"`
	TotalPayment   float64 `json:"totalPayment"`
}

// AmortizationRow is one month of a loan repayment schedule.
type AmortizationRow struct {
	Month            int     `json:"month"`
	Payment          float64 `json:"payment"`
	Principal        float64 `json:"principal"`
	Interest         float64 `json:"interest"`
	RemainingBalance float64 `json:"remainingBalance"`
}

// LoanResponse is the calculator API response.
type LoanResponse struct {
	Principal         float64           `json:"principal"`
	AnnualRatePercent float64           `json:"annualRatePercent"`
	TermYears         float64           `json:"termYears"`
	Result            LoanResult        `json:"result"`
	Display           map[string]string `json:"display"`
}

// ScheduleResponse is the amortization schedule API response.
type ScheduleResponse struct {
	Result LoanResult        `json:"result"`
	Rows   []AmortizationRow `json:"rows"`
}
