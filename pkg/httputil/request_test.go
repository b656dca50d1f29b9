package httputil

import (
	"errors"
	"net/http/httptest"
	"testing"
)

func TestBearerToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
		target string
		want   string
		err    error
	}{
		{name: "header", header: "Bearer abc", target: "/", want: "abc"},
		{name: "query fallback", target: "/ws?token=xyz", want: "xyz"},
		{name: "header wins", header: "Bearer abc", target: "/ws?token=xyz", want: "abc"},
		{name: "wrong scheme", header: "Basic abc", target: "/", err: ErrNoToken},
		{name: "empty bearer", header: "Bearer ", target: "/", err: ErrNoToken},
		{name: "missing", target: "/", err: ErrNoToken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tc.target, nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			got, err := BearerToken(r)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("expected %v, got %v", tc.err, err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("expected %q, got %q (%v)", tc.want, got, err)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, 418, "teapot")

	if w.Code != 418 {
		t.Fatalf("expected 418, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if body := w.Body.String(); body != `{"error":"teapot"}` {
		t.Fatalf("unexpected body %s", body)
	}
}
