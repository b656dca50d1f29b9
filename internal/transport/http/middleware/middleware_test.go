package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/iamasit07/connect4-negamax/pkg/auth"
)

func protectedRouter(issuer *auth.TokenIssuer) http.Handler {
	r := chi.NewRouter()
	r.With(GameAuth(issuer)).Get("/api/games/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := GameIDFromContext(r.Context())
		_, _ = w.Write([]byte(id))
	})
	return r
}

func TestGameAuth(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", time.Hour)
	router := protectedRouter(issuer)

	token, err := issuer.GenerateGameToken("g1")
	if err != nil {
		t.Fatalf("GenerateGameToken failed: %v", err)
	}

	cases := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{name: "valid", path: "/api/games/g1", header: "Bearer " + token, want: http.StatusOK},
		{name: "missing", path: "/api/games/g1", want: http.StatusUnauthorized},
		{name: "garbage", path: "/api/games/g1", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "other game", path: "/api/games/g2", header: "Bearer " + token, want: http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, w.Code, w.Body.String())
			}
			if tc.want == http.StatusOK && w.Body.String() != "g1" {
				t.Fatalf("expected game id in context, got %q", w.Body.String())
			}
		})
	}
}

func TestCORS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	handler := CORS([]string{"http://localhost:5173"}, zap.NewNop().Sugar())(ok)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Fatalf("allowed origin rejected: %d %v", w.Code, w.Header())
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for unknown origin, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected preflight 200, got %d", w.Code)
	}
}
