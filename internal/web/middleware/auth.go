package middleware

import (
	"context"
	"net/http"

	"github.com/jurdabos/countries-visited/internal/services/auth"
)

type contextKey string

const (
	sessionContextKey contextKey = "session"

	// SessionCookieName is the cookie carrying the session token
	SessionCookieName = "session"
)

// GetSession retrieves the authenticated session from the request context
// Returns nil if the request is unauthenticated
func GetSession(ctx context.Context) *auth.Session {
	session, _ := ctx.Value(sessionContextKey).(*auth.Session)
	return session
}

// Auth returns middleware that requires a valid session
// Redirects to the login page if not authenticated
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := sessionFromCookie(r, authService)
			if session == nil {
				http.Redirect(w, r, "/login?next="+r.URL.Path, http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth returns middleware that attempts authentication but doesn't require it
func OptionalAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := sessionFromCookie(r, authService)
			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionFromCookie(r *http.Request, authService *auth.Service) *auth.Session {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil
	}

	session, err := authService.ValidateSession(cookie.Value)
	if err != nil {
		return nil
	}

	return session
}
