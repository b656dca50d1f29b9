package middleware

import (
	"net/http"
	"slices"

	"go.uber.org/zap"

	"github.com/iamasit07/connect4-negamax/pkg/httputil"
)

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Allow-Credentials", "true")
}

// CORS lets requests without an Origin header through and rejects origins
// that are not in allowedOrigins.
func CORS(allowedOrigins []string, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin != "" {
				if !slices.Contains(allowedOrigins, origin) {
					logger.Warnw("[CORS] Origin not in allowed list", "origin", origin, "allowed", allowedOrigins)
					httputil.WriteError(w, http.StatusForbidden, "Origin not allowed")
					return
				}
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			setCORSHeaders(w)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
