package chi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func authRequest(t *testing.T, mw func(http.Handler) http.Handler, path, header string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req)
	return rec.Code
}

func TestBearerAuth_Disabled(t *testing.T) {
	mw := BearerAuthMiddleware(nil)
	if code := authRequest(t, mw, "/collections/c/schema", ""); code != http.StatusOK {
		t.Errorf("status = %d, want pass-through 200", code)
	}
}

func TestBearerAuth_ValidKey(t *testing.T) {
	mw := BearerAuthMiddleware([]string{"secret"})
	if code := authRequest(t, mw, "/collections/c/schema", "Bearer secret"); code != http.StatusOK {
		t.Errorf("status = %d, want 200", code)
	}
}

func TestBearerAuth_Rejections(t *testing.T) {
	mw := BearerAuthMiddleware([]string{"secret"})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic secret"},
		{"wrong key", "Bearer nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := authRequest(t, mw, "/collections/c/schema", tt.header); code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", code)
			}
		})
	}
}

func TestBearerAuth_ExemptPaths(t *testing.T) {
	mw := BearerAuthMiddleware([]string{"secret"})

	for _, path := range []string{"/health", "/metrics"} {
		if code := authRequest(t, mw, path, ""); code != http.StatusOK {
			t.Errorf("%s status = %d, want exempt 200", path, code)
		}
	}
}
