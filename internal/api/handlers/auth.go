package handlers

import (
	"errors"
	"net/http"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/api/middleware"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/service"
)

// AuthHandler handles HTTP requests for the mocked login, signup and logout flow.
type AuthHandler struct {
	sessionService *service.SessionService
}

// NewAuthHandler creates a new AuthHandler with the provided service dependency.
func NewAuthHandler(sessionService *service.SessionService) *AuthHandler {
	return &AuthHandler{
		sessionService: sessionService,
	}
}

// Login handles POST requests to open a session.
// Any non-empty email and password pair is accepted.
//
// Endpoint: POST /api/auth/login
// Request Body: LoginRequest (email, password)
// Response: 200 OK with SessionResponse (token, identity)
// Error: 400 Bad Request if email or password is missing
// Error: 500 Internal Server Error if the session cannot be stored
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.LoginRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	session, err := h.sessionService.Login(r.Context(), req)
	if err != nil {
		h.respondAuthError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, session)
}

// Signup handles POST requests to register and open a session.
//
// Endpoint: POST /api/auth/signup
// Request Body: SignupRequest (email, password, confirmPassword, whatsappNumber)
// Response: 201 Created with SessionResponse
// Error: 400 Bad Request if a field is missing or the passwords differ
// Error: 500 Internal Server Error if the session cannot be stored
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SignupRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	session, err := h.sessionService.Signup(r.Context(), req)
	if err != nil {
		h.respondAuthError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, session)
}

// Logout handles POST requests to close the caller's session.
//
// Endpoint: POST /api/auth/logout
// Response: 204 No Content
// Error: 401 Unauthorized if the token is missing, invalid or already closed
// Error: 500 Internal Server Error if the session cannot be removed
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	err := h.sessionService.Logout(r.Context(), middleware.BearerToken(r))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUnauthenticated),
			errors.Is(err, apperrors.ErrInvalidSession),
			errors.Is(err, apperrors.ErrSessionNotFound):
			response.RespondError(w, http.StatusUnauthorized, apperrors.ErrUnauthenticated.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToEndSession.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Me handles GET requests for the identity of the caller's session.
//
// Endpoint: GET /api/auth/me
// Response: 200 OK with Identity
// Error: 401 Unauthorized if no session (enforced by middleware)
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(r)
	if !ok {
		response.RespondError(w, http.StatusUnauthorized, apperrors.ErrUnauthenticated.Error(), "")
		return
	}

	response.RespondJSON(w, http.StatusOK, session.Identity)
}

func (h *AuthHandler) respondAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrMissingCredentials),
		errors.Is(err, apperrors.ErrMissingSignupFields),
		errors.Is(err, apperrors.ErrPasswordMismatch):
		response.RespondError(w, http.StatusBadRequest, err.Error(), "")
	default:
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToCreateSession.Error(), err.Error())
	}
}
