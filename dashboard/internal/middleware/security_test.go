package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func serveWithHeaders(cfg SecurityConfig) *httptest.ResponseRecorder {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	SecurityHeaders(cfg)(next).ServeHTTP(rr, req)
	return rr
}

func TestSecurityHeaders_AllHeadersSet(t *testing.T) {
	rr := serveWithHeaders(SecurityConfig{HSTS: true})

	expectedHeaders := map[string]string{
		"X-Frame-Options":           "DENY",
		"X-Content-Type-Options":    "nosniff",
		"Referrer-Policy":           "strict-origin-when-cross-origin",
		"Permissions-Policy":        "geolocation=(), microphone=(), camera=()",
		"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
	}

	for header, expectedValue := range expectedHeaders {
		actualValue := rr.Header().Get(header)
		if actualValue != expectedValue {
			t.Errorf("Expected %s header to be '%s', got '%s'", header, expectedValue, actualValue)
		}
	}
}

func TestSecurityHeaders_CSP(t *testing.T) {
	csp := serveWithHeaders(SecurityConfig{}).Header().Get("Content-Security-Policy")

	expectedDirectives := []string{
		"default-src 'self'",
		"style-src 'self'",
		"frame-ancestors 'none'",
		"form-action 'self'",
	}
	for _, directive := range expectedDirectives {
		if !strings.Contains(csp, directive) {
			t.Errorf("CSP missing directive %q: %s", directive, csp)
		}
	}
	if strings.Contains(csp, "unsafe-inline") {
		t.Errorf("CSP must not allow unsafe-inline: %s", csp)
	}
}

func TestSecurityHeaders_NoHSTSByDefault(t *testing.T) {
	rr := serveWithHeaders(SecurityConfig{})

	if hsts := rr.Header().Get("Strict-Transport-Security"); hsts != "" {
		t.Errorf("Expected no HSTS header, got '%s'", hsts)
	}
}
