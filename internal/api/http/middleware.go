package http

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"toolshare-backend/internal/apperr"
	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/security"
)

type contextKey string

const claimsContextKey contextKey = "session_claims"

// claimsFrom returns the verified session claims stored by Authenticate.
func claimsFrom(ctx context.Context) (*security.UserClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*security.UserClaims)
	return claims, ok
}

// Middleware bundles the auth and cron-secret checks with their
// configuration so the router can apply them per route.
type Middleware struct {
	tokens      security.TokenManager
	cronSecret  string
	adminEmails map[string]struct{}
}

func NewMiddleware(tokens security.TokenManager, cronSecret string, adminEmails []string) *Middleware {
	allow := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		allow[strings.ToLower(e)] = struct{}{}
	}
	return &Middleware{
		tokens:      tokens,
		cronSecret:  cronSecret,
		adminEmails: allow,
	}
}

// RequestID tags every request with an id for log correlation.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimPrefix(auth, prefix)
}

// Authenticate verifies the session JWT minted by the auth provider
// and stores its claims in the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token", Code: "unauthenticated"})
			return
		}
		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			logger.Debug("Rejected session token", "error", err)
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired session", Code: "unauthenticated"})
			return
		}
		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// isAdmin implements the platform-operator capability: a role claim
// from the auth provider, or membership in the configured allow-list.
func (m *Middleware) isAdmin(claims *security.UserClaims) bool {
	if claims.HasRole(security.RolePlatformAdmin) {
		return true
	}
	_, ok := m.adminEmails[strings.ToLower(claims.Email)]
	return ok
}

// RequireAdmin must run after Authenticate.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(r.Context())
		if !ok || !m.isAdmin(claims) {
			writeError(w, apperr.Authorization("not_admin", "platform operator access required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CronAuth guards the sweep endpoints with the shared scheduler secret.
func (m *Middleware) CronAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if subtle.ConstantTimeCompare([]byte(token), []byte(m.cronSecret)) != 1 {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid cron secret", Code: "unauthenticated"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
