// Package theme resolves the light/dark display preference for a request.
//
// The preference lives in a cookie and is resolved per request; callers pass
// the resolved Theme into templates rather than reading shared state.
package theme

import (
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/inpact/internal/services/web/platform/requestmeta"
)

// CookieName stores the theme preference.
const CookieName = "inpact_theme"

// Theme is a display mode.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Default is used when no preference was recorded.
const Default = Light

// Parse normalizes a theme value.
func Parse(value string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(value))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	default:
		return "", false
	}
}

// Toggle returns the opposite mode.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Resolve reads the request preference, falling back to Default.
func Resolve(r *http.Request) Theme {
	if r == nil {
		return Default
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie == nil {
		return Default
	}
	if parsed, ok := Parse(cookie.Value); ok {
		return parsed
	}
	return Default
}

// Write persists the preference for a year.
func Write(w http.ResponseWriter, r *http.Request, value Theme, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	if _, ok := Parse(string(value)); !ok {
		value = Default
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    string(value),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		Secure:   requestmeta.IsHTTPSWithPolicy(r, policy),
		SameSite: http.SameSiteLaxMode,
	})
}
