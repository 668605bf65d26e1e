package security

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// GenerateSessionID returns a fresh opaque session identifier
func GenerateSessionID() string {
	return uuid.New().String()
}

// GenerateVerificationToken returns the token embedded in email
// verification links
func GenerateVerificationToken() string {
	return uuid.New().String()
}

// IsSecureRequest reports whether the request arrived over HTTPS, either
// directly or via a TLS-terminating proxy
func IsSecureRequest(r *http.Request) bool {
	return r.TLS != nil ||
		r.Header.Get("X-Forwarded-Proto") == "https" ||
		r.URL.Scheme == "https"
}

// CreateSessionCookie builds the session cookie. HttpOnly and SameSite=Lax
// always; Secure whenever the request itself came in over HTTPS.
func CreateSessionCookie(r *http.Request, name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	}
}

// CreateDeleteCookie builds a cookie that clears the named cookie in the
// browser, with the same flags the session cookie was set with
func CreateDeleteCookie(r *http.Request, name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	}
}
