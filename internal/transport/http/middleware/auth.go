package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iamasit07/connect4-negamax/pkg/auth"
	"github.com/iamasit07/connect4-negamax/pkg/httputil"
)

type contextKey string

const gameIDKey contextKey = "game_id"

// TokenValidator is satisfied by *auth.TokenIssuer.
type TokenValidator interface {
	ValidateGameToken(token string) (*auth.GameClaims, error)
}

// GameAuth requires a bearer token issued for the game named by the {id}
// route parameter.
func GameAuth(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := httputil.BearerToken(r)
			if err != nil {
				httputil.WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, err := tokens.ValidateGameToken(tokenString)
			if err != nil {
				httputil.WriteError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			if gameID := chi.URLParam(r, "id"); gameID != "" && gameID != claims.GameID {
				httputil.WriteError(w, http.StatusForbidden, "Token does not belong to this game")
				return
			}

			ctx := context.WithValue(r.Context(), gameIDKey, claims.GameID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GameIDFromContext returns the game id stored by GameAuth.
func GameIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(gameIDKey).(string)
	return id, ok
}
