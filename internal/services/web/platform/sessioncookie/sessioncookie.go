// Package sessioncookie centralizes web session cookie behavior.
package sessioncookie

import (
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/inpact/internal/services/web/platform/requestmeta"
)

// Name is the canonical web session cookie name. The value is a signed
// session token.
const Name = "inpact_session"

// Read returns the trimmed session cookie value when present.
func Read(r *http.Request) (string, bool) {
	return readCookie(r, Name)
}

// Write sets the session cookie for the current request context.
func Write(w http.ResponseWriter, r *http.Request, token string, ttl time.Duration) {
	WriteWithPolicy(w, r, token, ttl, requestmeta.SchemePolicy{})
}

// WriteWithPolicy sets the session cookie for the current request context.
// A positive ttl bounds the cookie lifetime to the token lifetime.
func WriteWithPolicy(w http.ResponseWriter, r *http.Request, token string, ttl time.Duration, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	cookie := &http.Cookie{
		Name:     Name,
		Value:    strings.TrimSpace(token),
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPSWithPolicy(r, policy),
		SameSite: http.SameSiteLaxMode,
	}
	if ttl > 0 {
		cookie.MaxAge = int(ttl.Seconds())
	}
	http.SetCookie(w, cookie)
}

// ClearWithPolicy expires the session cookie for the current request context.
func ClearWithPolicy(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) {
	clearCookie(w, r, Name, policy)
}

func readCookie(r *http.Request, name string) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(name)
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	return value, true
}

func clearCookie(w http.ResponseWriter, r *http.Request, name string, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPSWithPolicy(r, policy),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
