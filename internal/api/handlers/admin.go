package handlers

import (
	"net/http"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/service"
)

// AdminHandler serves the admin panel.
type AdminHandler struct {
	adminService *service.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// Stats handles GET requests for stored session and collection counts.
//
// Endpoint: GET /api/admin/stats
// Response: 200 OK with AdminStats
// Error: 401 Unauthorized / 403 Forbidden (enforced by middleware)
// Error: 500 Internal Server Error if counting fails
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminService.GetStats(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetStats.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stats)
}
