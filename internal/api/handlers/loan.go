package handlers

import (
	"net/http"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/finance"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/model"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/money"
)

// LoanHandler serves the stateless EMI calculator.
type LoanHandler struct {
	calculator finance.LoanCalculator
}

// NewLoanHandler creates a new LoanHandler using calculator.
func NewLoanHandler(calculator finance.LoanCalculator) *LoanHandler {
	return &LoanHandler{
		calculator: calculator,
	}
}

// Calculate handles GET requests for the monthly payment of a loan.
// Unparsable or negative inputs are treated as 0 and yield the zero result.
//
// Endpoint: GET /api/loan/calculate?principal=&rate=&years=
// Response: 200 OK with LoanResponse
func (h *LoanHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	q := loanQuery(r)
	result := h.calculator.Calculate(q.Principal, q.AnnualRatePercent, q.TermYears)

	response.RespondJSON(w, http.StatusOK, model.LoanResponse{
		Principal:         q.Principal,
		AnnualRatePercent: q.AnnualRatePercent,
		TermYears:         q.TermYears,
		Result:            result,
		Display: money.FormatAll(map[string]float64{
			"monthlyPayment": result.MonthlyPayment,
			"totalInterest":  result.TotalInterest,
			"totalPayment":   result.TotalPayment,
		}),
	})
}

// Schedule handles GET requests for the month-by-month amortization schedule.
//
// Endpoint: GET /api/loan/schedule?principal=&rate=&years=
// Response: 200 OK with ScheduleResponse (rows empty for degenerate input)
func (h *LoanHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	q := loanQuery(r)

	response.RespondJSON(w, http.StatusOK, model.ScheduleResponse{
		Result: h.calculator.Calculate(q.Principal, q.AnnualRatePercent, q.TermYears),
		Rows:   h.calculator.Schedule(q.Principal, q.AnnualRatePercent, q.TermYears),
	})
}

func loanQuery(r *http.Request) request.LoanQuery {
	params := r.URL.Query()
	return request.ParseLoanQuery(params.Get("principal"), params.Get("rate"), params.Get("years"))
}
