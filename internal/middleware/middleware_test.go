package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	type tc struct {
		origins    []string
		origin     string
		method     string
		wantAllow  string
		wantStatus int
	}

	tests := map[string]tc{
		"allowed host": {origins: []string{"localhost:5173"}, origin: "http://localhost:5173", method: "GET", wantAllow: "http://localhost:5173", wantStatus: http.StatusTeapot},
		"other host":   {origins: []string{"localhost:5173"}, origin: "http://evil.test", method: "GET", wantStatus: http.StatusTeapot},
		"wildcard":     {origins: []string{"*"}, origin: "https://app.test", method: "GET", wantAllow: "https://app.test", wantStatus: http.StatusTeapot},
		"preflight":    {origins: []string{"app.test"}, origin: "https://app.test", method: "OPTIONS", wantAllow: "https://app.test", wantStatus: http.StatusNoContent},
		"no origin":    {origins: []string{"*"}, method: "GET", wantStatus: http.StatusTeapot},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/health", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			CORS(tt.origins)(ok).ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("allow origin = %q, want %q", got, tt.wantAllow)
			}
		})
	}
}

func TestRecoveryAndLogger(t *testing.T) {
	panics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	rec := httptest.NewRecorder()
	Recovery(Logger(panics)).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
