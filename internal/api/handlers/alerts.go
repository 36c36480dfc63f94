package handlers

import (
	"net/http"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/service"
)

// AlertHandler serves the alerts tab.
type AlertHandler struct {
	alertService *service.AlertService
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(alertService *service.AlertService) *AlertHandler {
	return &AlertHandler{
		alertService: alertService,
	}
}

// Alerts handles GET requests for the example alerts.
//
// Endpoint: GET /api/alerts
// Response: 200 OK with array of Alert, newest date first
func (h *AlertHandler) Alerts(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.alertService.GetAlerts())
}
