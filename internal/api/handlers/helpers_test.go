package handlers

import (
	"net/http"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/api/middleware"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/model"
)

// asOwner attaches a session for ownerID, as middleware.RequireSession would.
func asOwner(req *http.Request, ownerID string) *http.Request {
	session := model.Session{ID: "test-session", Identity: model.Identity{ID: ownerID, Role: model.RoleUser}}
	return req.WithContext(middleware.WithSession(req.Context(), session))
}
