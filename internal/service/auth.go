package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/model"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/validation"
)

// Authenticator turns credentials into an identity.
type Authenticator interface {
	Authenticate(ctx context.Context, req request.LoginRequest) (model.Identity, error)
	Register(ctx context.Context, req request.SignupRequest) (model.Identity, error)
}

// RoleResolver maps an email address to its authorization role.
type RoleResolver interface {
	RoleFor(email string) model.Role
}

// EmailRoles grants the admin role to a fixed set of email addresses.
// Matching is case-insensitive.
type EmailRoles struct {
	admins map[string]struct{}
}

// NewEmailRoles creates an EmailRoles granting admin to the given addresses.
func NewEmailRoles(adminEmails []string) *EmailRoles {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		admins[normalizeEmail(email)] = struct{}{}
	}
	return &EmailRoles{admins: admins}
}

// RoleFor returns RoleAdmin for configured addresses and RoleUser otherwise.
func (r *EmailRoles) RoleFor(email string) model.Role {
	if _, ok := r.admins[normalizeEmail(email)]; ok {
		return model.RoleAdmin
	}
	return model.RoleUser
}

// MockAuthenticator accepts any well-formed credentials. It checks presence
// only, never the password itself.
type MockAuthenticator struct {
	roles RoleResolver
}

// NewMockAuthenticator creates a MockAuthenticator resolving roles through roles.
func NewMockAuthenticator(roles RoleResolver) *MockAuthenticator {
	return &MockAuthenticator{roles: roles}
}

// Authenticate validates the presence of email and password.
func (a *MockAuthenticator) Authenticate(_ context.Context, req request.LoginRequest) (model.Identity, error) {
	if err := validation.ValidateLogin(req); err != nil {
		return model.Identity{}, err
	}
	return a.identityFor(req.Email, ""), nil
}

// Register validates the signup fields and password confirmation.
func (a *MockAuthenticator) Register(_ context.Context, req request.SignupRequest) (model.Identity, error) {
	if err := validation.ValidateSignup(req); err != nil {
		return model.Identity{}, err
	}
	return a.identityFor(req.Email, strings.TrimSpace(req.WhatsappNumber)), nil
}

// identityFor derives a stable identity id from the email so that the same
// user is scoped to the same transaction collection on every login.
func (a *MockAuthenticator) identityFor(email, whatsapp string) model.Identity {
	email = strings.TrimSpace(email)
	role := a.roles.RoleFor(email)
	return model.Identity{
		ID:             IdentityID(email),
		Email:          email,
		Role:           role,
		IsAdmin:        role == model.RoleAdmin,
		WhatsappNumber: whatsapp,
	}
}

// IdentityID returns the UUIDv5 of the normalized email address.
func IdentityID(email string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+normalizeEmail(email))).String()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
