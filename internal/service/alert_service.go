package service

import (
	"sort"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/model"
)

// exampleAlerts are the fixed reminders shown on the alerts tab.
var exampleAlerts = []model.Alert{
	{ID: 1, Title: "EMI Due Soon", Description: "Your home loan EMI of ₹15,000 is due next week.", Date: "2025-05-23", Type: "due", Channel: "WhatsApp"},
	{ID: 2, Title: "Investment Matured", Description: "Your Fixed Deposit of ₹50,000 has matured.", Date: "2025-05-10", Type: "maturity", Channel: "In-App"},
	{ID: 3, Title: "Credit Card Payment", Description: "Credit card bill payment of ₹5,000 is due in 3 days.", Date: "2025-05-19", Type: "payment", Channel: "WhatsApp"},
	{ID: 4, Title: "Loan Status Update", Description: "Your personal loan application has been approved.", Date: "2025-05-15", Type: "status", Channel: "In-App"},
}

// AlertService serves the static example alerts. Nothing is delivered.
type AlertService struct{}

// NewAlertService creates a new AlertService.
func NewAlertService() *AlertService {
	return &AlertService{}
}

// GetAlerts returns the alerts, newest date first.
func (s *AlertService) GetAlerts() []model.Alert {
	out := make([]model.Alert, len(exampleAlerts))
	copy(out, exampleAlerts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}
