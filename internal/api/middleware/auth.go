package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mkaran/planetary-api/internal/api/apierr"
	"github.com/mkaran/planetary-api/internal/model"
	"github.com/mkaran/planetary-api/internal/services/auth"
)

type contextKey string

const subjectContextKey contextKey = "subject"

// Auth creates authentication middleware. It resolves the bearer token to
// a subject user id and stores it in the request context; requests with a
// missing, malformed, or expired token are rejected with 401.
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError("Authentication required"))
				return
			}

			subject, err := authService.ResolveToken(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), subjectContextKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the bearer token from the Authorization header
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// GetSubject returns the authenticated user id from the request context
func GetSubject(ctx context.Context) (model.UserID, bool) {
	subject, ok := ctx.Value(subjectContextKey).(model.UserID)
	return subject, ok
}

// MustGetSubject returns the authenticated user id or panics
func MustGetSubject(ctx context.Context) model.UserID {
	subject, ok := GetSubject(ctx)
	if !ok {
		panic("no subject in context - auth middleware not applied?")
	}
	return subject
}
