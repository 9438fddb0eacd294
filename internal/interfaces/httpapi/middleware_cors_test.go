package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		wantStatus int
		wantAllow  string
		wantVary   bool
	}{
		{
			name:       "configured origin",
			allowed:    []string{"https://pickem.example.com/"},
			method:     http.MethodGet,
			origin:     "https://pickem.example.com",
			wantStatus: http.StatusOK,
			wantAllow:  "https://pickem.example.com",
			wantVary:   true,
		},
		{
			name:       "wildcard preflight",
			allowed:    []string{"*"},
			method:     http.MethodOptions,
			origin:     "https://pickem.example.com",
			wantStatus: http.StatusNoContent,
			wantAllow:  "*",
		},
		{
			name:       "unconfigured origin",
			allowed:    []string{"https://allowed.example.com"},
			method:     http.MethodGet,
			origin:     "https://not-allowed.example.com",
			wantStatus: http.StatusOK,
		},
		{
			name:       "no origin header",
			allowed:    []string{"*"},
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/v1/me/picks", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			CORS(tt.allowed, next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status=%d want=%d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Fatalf("Access-Control-Allow-Origin=%q want=%q", got, tt.wantAllow)
			}
			if got := rec.Header().Get("Vary") == "Origin"; got != tt.wantVary {
				t.Fatalf("Vary: Origin present=%v want=%v", got, tt.wantVary)
			}
		})
	}
}
