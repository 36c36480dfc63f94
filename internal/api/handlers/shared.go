package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/api/middleware"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/model"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	response.RespondJSON(w, status, data)
}

// parseJSON decodes the request body into T, rejecting trailing data.
// Unknown fields such as a client echoing ownerId back are ignored.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T
	if r.Body == nil {
		return v, errors.New("request body is required")
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return v, errors.New("request body is required")
		}
		return v, fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return v, errors.New("request body must contain a single JSON object")
	}
	return v, nil
}

// ownerID returns the identity id of the request's session. Routes are
// mounted behind middleware.RequireSession, so a missing session means a
// routing mistake and falls back to the shared guest scope.
func ownerID(r *http.Request) string {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		return ""
	}
	return session.Identity.ID
}

// currentSession returns the request's session, if any.
func currentSession(r *http.Request) (model.Session, bool) {
	return middleware.SessionFromContext(r.Context())
}
