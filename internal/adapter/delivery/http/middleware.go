package http

import (
	"context"
	"net"
	"net/http"

	"github.com/go-chi/render"
	"github.com/shortly-app/shortly/internal/ratelimit"
	"github.com/shortly-app/shortly/internal/token"
)

// tokenCookie is the http-only cookie carrying the signed bearer token.
const tokenCookie = "token"

type ctxKey int

const userIDKey ctxKey = 0

// userIDFromContext returns the authenticated user id set by the
// authenticator middleware.
func userIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// authenticator verifies the token cookie and stores the user id in the
// request context. Requests without a valid token are rejected with 401.
func authenticator(tokens *token.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(tokenCookie)
			if err != nil {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, unauthorizedResponse)
				return
			}

			userID, err := tokens.Verify(cookie.Value)
			if err != nil {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, unauthorizedResponse)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// rateLimiter caps requests per source address for the wrapped routes.
// RealIP runs earlier in the chain, so RemoteAddr reflects the client.
func rateLimiter(limiter *ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !limiter.Allow(ip) {
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, tooManyRequestsResponse)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
