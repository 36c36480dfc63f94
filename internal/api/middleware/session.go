package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/model"
)

type sessionCtxKey struct{}

// SessionResolver resolves a bearer token to its session.
type SessionResolver interface {
	Current(ctx context.Context, token string) (model.Session, error)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// WithSession returns a copy of ctx carrying session.
func WithSession(ctx context.Context, session model.Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, session)
}

// SessionFromContext returns the session stored by RequireSession.
func SessionFromContext(ctx context.Context) (model.Session, bool) {
	session, ok := ctx.Value(sessionCtxKey{}).(model.Session)
	return session, ok
}

// RequireSession rejects requests without a valid session with 401 and
// otherwise stores the session in the request context.
func RequireSession(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := resolver.Current(r.Context(), BearerToken(r))
			if err != nil {
				switch {
				case errors.Is(err, apperrors.ErrUnauthenticated),
					errors.Is(err, apperrors.ErrInvalidSession),
					errors.Is(err, apperrors.ErrSessionNotFound):
					response.RespondError(w, http.StatusUnauthorized, apperrors.ErrUnauthenticated.Error(), err.Error())
				default:
					response.RespondError(w, http.StatusInternalServerError, "failed to resolve session", err.Error())
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// RequireAdmin rejects sessions whose identity is not an admin with 403.
// It must run after RequireSession.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := SessionFromContext(r.Context())
		if !ok {
			response.RespondError(w, http.StatusUnauthorized, apperrors.ErrUnauthenticated.Error(), "")
			return
		}
		if !session.Identity.IsAdmin {
			response.RespondError(w, http.StatusForbidden, apperrors.ErrForbidden.Error(), "")
			return
		}

		next.ServeHTTP(w, r)
	})
}
