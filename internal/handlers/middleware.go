package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"lingualearn/internal/models"
	"lingualearn/internal/security"
	"lingualearn/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const UserContextKey ContextKey = "user"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	rateLimiter *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, rateLimiter *security.RateLimiter) *Middleware {
	return &Middleware{
		authService: authService,
		rateLimiter: rateLimiter,
	}
}

// RequireAuth is middleware that requires either a valid session cookie or a
// Bearer API token
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := m.userFromRequest(w, r)
		if user == nil {
			respondWithError(w, http.StatusUnauthorized, "Authentication required", "", nil)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

func (m *Middleware) userFromRequest(w http.ResponseWriter, r *http.Request) *models.User {
	// Bearer token first: stateless API clients
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		token := strings.TrimPrefix(auth, "Bearer ")
		user, err := m.authService.ValidateAPIToken(token)
		if err == nil {
			return user
		}
		return nil
	}

	cookie, err := r.Cookie("session_id")
	if err != nil {
		return nil
	}

	user, err := m.authService.ValidateSession(cookie.Value)
	if err != nil {
		// Clear invalid cookie
		http.SetCookie(w, security.CreateDeleteCookie(r, "session_id"))
		return nil
	}
	return user
}

// RateLimit rejects requests from clients that exceed the configured rate
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.rateLimiter.Allow(ip) {
			respondWithError(w, http.StatusTooManyRequests, "Too many requests", "", nil)
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetUserFromContext retrieves the user from the request context
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}
