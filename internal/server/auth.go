package server

import (
	"net/http"
	"pairing-hub/internal/identity"
	"strings"

	"go.uber.org/zap"
)

const bearerPrefix = "Bearer "

func tokenFrom(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	}
	// Browsers cannot set headers on websocket upgrades.
	return r.URL.Query().Get("access_token")
}

// authMiddleware rejects requests without a valid token and stores the caller
// identity on the request context.
func authMiddleware(logger *zap.SugaredLogger, resolver *identity.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := resolver.Resolve(tokenFrom(r))
			if err != nil {
				logger.Debugw("rejected connection", "remoteAddr", r.RemoteAddr, "error", err)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(identity.WithIdentity(r.Context(), id)))
		})
	}
}
