package chi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/cardex/internal/logger"
)

// exemptPaths are routes that bypass authentication (health, metrics).
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// readMethods never require a key; the catalog is public to read.
var readMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodOptions: {},
}

// BearerAuthMiddleware returns a middleware that validates Bearer tokens on
// mutating requests. If apiKeys is empty, authentication is disabled
// (pass-through).
func BearerAuthMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	validKeys := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			validKeys[k] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		// Auth disabled — pass everything through
		if len(validKeys) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := readMethods[r.Method]; ok {
				next.ServeHTTP(w, r)
				return
			}
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" {
				rejectAuth(w, r, "missing authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(auth, bearerPrefix) {
				rejectAuth(w, r, "authorization header must use Bearer scheme")
				return
			}

			token := auth[len(bearerPrefix):]
			if _, ok := validKeys[token]; !ok {
				rejectAuth(w, r, "invalid api key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// rejectAuth logs the rejection on the request-scoped logger and writes a 401.
func rejectAuth(w http.ResponseWriter, r *http.Request, message string) {
	logpkg.FromContext(r.Context()).Warn("auth rejected",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("reason", message),
	)
	writeError(w, http.StatusUnauthorized, codeUnauthorized, message)
}
