package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/finance"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/model"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/testutil"
)

func TestLoanHandler_Calculate(t *testing.T) {
	t.Run("returns payment breakdown", func(t *testing.T) {
		handler := NewLoanHandler(finance.LoanCalculator{})

		req := httptest.NewRequest(http.MethodGet, "/api/loan/calculate?principal=100000&rate=8&years=5", nil)
		w := httptest.NewRecorder()

		handler.Calculate(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}

		var response model.LoanResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if math.Abs(response.Result.MonthlyPayment-2027.64) > 0.01 {
			t.Errorf("Expected monthly payment ~2027.64, got %v", response.Result.MonthlyPayment)
		}
		if response.Display["monthlyPayment"] != "₹2,027.64" {
			t.Errorf("Expected '₹2,027.64', got '%s'", response.Display["monthlyPayment"])
		}
		if response.Principal != 100000 || response.AnnualRatePercent != 8 || response.TermYears != 5 {
			t.Errorf("Expected inputs echoed, got %+v", response)
		}
	})

	t.Run("treats invalid input as zero", func(t *testing.T) {
		handler := NewLoanHandler(finance.LoanCalculator{})

		req := httptest.NewRequest(http.MethodGet, "/api/loan/calculate?principal=abc&rate=-2&years=5", nil)
		w := httptest.NewRecorder()

		handler.Calculate(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}

		var response model.LoanResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Result != (model.LoanResult{}) {
			t.Errorf("Expected zero result, got %+v", response.Result)
		}
	})

	t.Run("extreme rate and term return finite values", func(t *testing.T) {
		handler := NewLoanHandler(finance.LoanCalculator{})

		req := httptest.NewRequest(http.MethodGet, "/api/loan/calculate?principal=100000&rate=1000&years=100", nil)
		w := httptest.NewRecorder()

		handler.Calculate(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}

		var response model.LoanResponse
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Expected a JSON body, got error: %v", err)
		}

		if math.IsNaN(response.Result.MonthlyPayment) || response.Result.MonthlyPayment <= 0 {
			t.Errorf("Expected a positive monthly payment, got %v", response.Result.MonthlyPayment)
		}
		if response.Display["totalPayment"] == "" {
			t.Error("Expected a rendered total payment")
		}
	})

	t.Run("zero rate uses configured mode", func(t *testing.T) {
		handler := NewLoanHandler(finance.LoanCalculator{ZeroRate: finance.ZeroRateStraightLine})

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/loan/calculate", map[string]string{
			"principal": "12000",
			"rate":      "0",
			"years":     "1",
		})
		w := httptest.NewRecorder()

		handler.Calculate(w, req)

		var response model.LoanResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Result.MonthlyPayment != 1000 {
			t.Errorf("Expected 1000, got %v", response.Result.MonthlyPayment)
		}
	})
}

func TestLoanHandler_Schedule(t *testing.T) {
	t.Run("returns one row per month", func(t *testing.T) {
		handler := NewLoanHandler(finance.LoanCalculator{})

		req := httptest.NewRequest(http.MethodGet, "/api/loan/schedule?principal=100000&rate=8&years=5", nil)
		w := httptest.NewRecorder()

		handler.Schedule(w, req)

		var response model.ScheduleResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response.Rows) != 60 {
			t.Fatalf("Expected 60 rows, got %d", len(response.Rows))
		}
		if last := response.Rows[59]; math.Abs(last.RemainingBalance) > 0.01 {
			t.Errorf("Expected final balance ~0, got %v", last.RemainingBalance)
		}
	})

	t.Run("term above the maximum returns empty rows", func(t *testing.T) {
		handler := NewLoanHandler(finance.LoanCalculator{})

		req := httptest.NewRequest(http.MethodGet, "/api/loan/schedule?principal=100000&rate=0.0001&years=1000000", nil)
		w := httptest.NewRecorder()

		handler.Schedule(w, req)

		var response model.ScheduleResponse
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Expected a JSON body, got error: %v", err)
		}

		if len(response.Rows) != 0 {
			t.Errorf("Expected no rows, got %d", len(response.Rows))
		}
	})

	t.Run("returns empty rows for degenerate input", func(t *testing.T) {
		handler := NewLoanHandler(finance.LoanCalculator{})

		req := httptest.NewRequest(http.MethodGet, "/api/loan/schedule", nil)
		w := httptest.NewRecorder()

		handler.Schedule(w, req)

		var response map[string]json.RawMessage
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if string(response["rows"]) != "[]" {
			t.Errorf("Expected empty rows array, got %s", response["rows"])
		}
	})
}
