package validation

import (
	"strings"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/apperrors"
)

// ValidateLogin requires a non-blank email and a non-empty password.
func ValidateLogin(req request.LoginRequest) error {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.ErrMissingCredentials
	}
	return nil
}

// ValidateSignup requires email, password and a matching confirmation.
func ValidateSignup(req request.SignupRequest) error {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" || req.ConfirmPassword == "" {
		return apperrors.ErrMissingSignupFields
	}
	if req.Password != req.ConfirmPassword {
		return apperrors.ErrPasswordMismatch
	}
	return nil
}
