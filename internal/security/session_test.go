package security

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestIsSecureRequest(t *testing.T) {
	tests := []struct {
		name  string
		setup func(r *http.Request)
		want  bool
	}{
		{
			name:  "plain http",
			setup: func(r *http.Request) {},
			want:  false,
		},
		{
			name:  "direct tls",
			setup: func(r *http.Request) { r.TLS = &tls.ConnectionState{} },
			want:  true,
		},
		{
			name:  "behind tls-terminating proxy",
			setup: func(r *http.Request) { r.Header.Set("X-Forwarded-Proto", "https") },
			want:  true,
		},
		{
			name:  "forwarded proto http",
			setup: func(r *http.Request) { r.Header.Set("X-Forwarded-Proto", "http") },
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(r)
			if got := IsSecureRequest(r); got != tt.want {
				t.Errorf("IsSecureRequest() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCreateSessionCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-Proto", "https")
	expires := time.Now().Add(24 * time.Hour)

	cookie := CreateSessionCookie(r, "session_id", "abc123", expires)

	if cookie.Name != "session_id" || cookie.Value != "abc123" {
		t.Errorf("unexpected name/value: %s=%s", cookie.Name, cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	if !cookie.Secure {
		t.Error("session cookie must be Secure on an HTTPS request")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("SameSite = %v, want Lax", cookie.SameSite)
	}
	if !cookie.Expires.Equal(expires) {
		t.Errorf("Expires = %v, want %v", cookie.Expires, expires)
	}
}

func TestCreateDeleteCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	cookie := CreateDeleteCookie(r, "session_id")

	if cookie.Value != "" {
		t.Errorf("delete cookie value should be empty, got %q", cookie.Value)
	}
	if cookie.MaxAge != -1 {
		t.Errorf("MaxAge = %d, want -1", cookie.MaxAge)
	}
	if !cookie.HttpOnly {
		t.Error("delete cookie must be HttpOnly")
	}
}
